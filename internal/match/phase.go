// Package match owns the phase timeline and clock for one hosted match:
// the phase state variable, its guarded transitions, and the
// admin-adjustable elapsed clock that drives them.
package match

import "time"

// Phase names an interval of the match timeline.
type Phase int

const (
	// Prepare is the window in which survivor teams form.
	Prepare Phase = iota
	// FirstPhase is the main timed siege phase.
	FirstPhase
	// SecondPhase lifts the air restriction and buffs survivor blocks.
	SecondPhase
	// SuddenDeath begins once survivors outlast the timed phases; it has
	// no natural timeout and ends only by elimination.
	SuddenDeath
	// Ended is entered when the last survivor team dies in sudden death.
	Ended
	// GameOver is the terminal restart state.
	GameOver
)

var phaseNames = map[Phase]string{
	Prepare:     "Prepare",
	FirstPhase:  "First Phase",
	SecondPhase: "Second Phase",
	SuddenDeath: "Sudden Death",
	Ended:       "Ended",
	GameOver:    "Game Over",
}

// String returns the display name of the phase.
func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Timed reports whether the phase ends by elapsed time.
func (p Phase) Timed() bool {
	return p == Prepare || p == FirstPhase || p == SecondPhase
}

// Timeline fixes when each timed phase starts, as offsets from match
// start. A phase's start is the sum of all prior phase durations.
type Timeline struct {
	firstStart       time.Duration
	secondStart      time.Duration
	suddenDeathStart time.Duration
}

// NewTimeline builds a timeline from the three timed phase durations.
func NewTimeline(prepare, first, second time.Duration) Timeline {
	return Timeline{
		firstStart:       prepare,
		secondStart:      prepare + first,
		suddenDeathStart: prepare + first + second,
	}
}

// Start returns the elapsed time at which the given phase begins.
// Prepare starts at zero; Ended and GameOver have no scheduled start.
func (t Timeline) Start(p Phase) (time.Duration, bool) {
	switch p {
	case Prepare:
		return 0, true
	case FirstPhase:
		return t.firstStart, true
	case SecondPhase:
		return t.secondStart, true
	case SuddenDeath:
		return t.suddenDeathStart, true
	}
	return 0, false
}

// PhaseAt resolves the scheduled phase for an elapsed time.
func (t Timeline) PhaseAt(elapsed time.Duration) Phase {
	switch {
	case elapsed < t.firstStart:
		return Prepare
	case elapsed < t.secondStart:
		return FirstPhase
	case elapsed < t.suddenDeathStart:
		return SecondPhase
	}
	return SuddenDeath
}
