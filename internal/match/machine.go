package match

import (
	"fmt"
	"sync"
	"time"
)

// Status is a consistent snapshot of the match state.
type Status struct {
	Phase   Phase
	Elapsed time.Duration
	Skipped time.Duration
}

// Machine owns the phase and clock for one hosted match. It is
// constructed once per hosted match and passed to every component that
// needs it; there is no ambient global state.
//
// All reads and writes of phase and clock go through the machine's lock.
// Critical sections stay minimal and never call into the engine; callers
// act on returned snapshots after the lock is released.
type Machine struct {
	timeline Timeline
	now      func() time.Time

	mu         sync.Mutex
	phase      Phase
	matchStart time.Time
	skipped    time.Duration
}

// NewMachine builds a machine over the given timeline. A nil now uses
// time.Now; tests inject a fake clock.
func NewMachine(timeline Timeline, now func() time.Time) *Machine {
	if now == nil {
		now = time.Now
	}
	return &Machine{
		timeline:   timeline,
		now:        now,
		phase:      Prepare,
		matchStart: now(),
	}
}

// Timeline returns the phase timeline.
func (m *Machine) Timeline() Timeline {
	return m.timeline
}

// StartMatch resets the machine for a freshly loaded world: phase back to
// Prepare, clock restarted, accumulated skip discarded.
func (m *Machine) StartMatch() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.phase = Prepare
	m.matchStart = m.now()
	m.skipped = 0
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Status returns a consistent snapshot of phase and clock.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{
		Phase:   m.phase,
		Elapsed: m.elapsedLocked(),
		Skipped: m.skipped,
	}
}

// Elapsed returns the match clock: wall time since match start plus the
// accumulated admin skip.
func (m *Machine) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsedLocked()
}

func (m *Machine) elapsedLocked() time.Duration {
	return m.now().Sub(m.matchStart) + m.skipped
}

// Skip advances the match clock by d. Skips only move time forward.
func (m *Machine) Skip(d time.Duration) (time.Duration, error) {
	if d < 0 {
		return 0, fmt.Errorf("skip duration must not be negative, got %s", d)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped += d
	return m.elapsedLocked(), nil
}

// AdvanceIfDue transitions through every phase boundary the clock has
// crossed and returns the phases entered, in order. Each transition fires
// at most once: the lock is held while the phase variable moves, and the
// caller runs entry side effects outside the lock, in the returned order.
// A machine in Ended or GameOver never advances.
func (m *Machine) AdvanceIfDue() []Phase {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.phase.Timed() {
		return nil
	}

	elapsed := m.elapsedLocked()
	var entered []Phase
	for m.phase.Timed() {
		next := m.phase + 1
		start, ok := m.timeline.Start(next)
		if !ok || elapsed < start {
			break
		}
		m.phase = next
		entered = append(entered, next)
	}
	return entered
}

// BeginGameOver moves the machine to GameOver and reports whether this
// call performed the transition. The second concurrent restart sees false
// and must do nothing; this is the single-flight guard against a double
// map rotation.
func (m *Machine) BeginGameOver() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == GameOver {
		return false
	}
	m.phase = GameOver
	return true
}

// MarkEnded records the sudden-death elimination outcome. It only
// succeeds from SuddenDeath; later restart handling moves to GameOver.
func (m *Machine) MarkEnded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != SuddenDeath {
		return false
	}
	m.phase = Ended
	return true
}
