package engine

import (
	"sort"
	"sync"
)

// Priority orders handlers for the same event kind. Lower values run first.
type Priority int

const (
	// PriorityImportant runs before everything else (logging, vetoes).
	PriorityImportant Priority = iota
	// PriorityHigh runs before normal handlers.
	PriorityHigh
	// PriorityNormal is the default.
	PriorityNormal
	// PriorityLow runs last.
	PriorityLow
)

// Handler consumes one event.
type Handler func(Event)

type subscription struct {
	priority Priority
	order    int
	handler  Handler
}

// Bus routes engine events to registered handlers. Handlers for one event
// run in priority order, ties broken by registration order. By default
// every published event is dispatched on its own goroutine: callbacks are
// concurrent and unordered with respect to each other, exactly the
// scheduling model the game mode has to survive. A synchronous bus is
// available for deterministic tests.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]subscription
	nextID   int
	sync     bool
}

// NewBus returns a bus with concurrent dispatch.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]subscription)}
}

// NewSyncBus returns a bus that dispatches events inline on the caller.
func NewSyncBus() *Bus {
	return &Bus{handlers: make(map[Kind][]subscription), sync: true}
}

// Subscribe registers a handler for an event kind.
func (b *Bus) Subscribe(kind Kind, priority Priority, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[kind] = append(b.handlers[kind], subscription{
		priority: priority,
		order:    b.nextID,
		handler:  h,
	})
	b.nextID++
	sort.SliceStable(b.handlers[kind], func(i, j int) bool {
		return b.handlers[kind][i].priority < b.handlers[kind][j].priority
	})
}

// Publish delivers an event to all handlers registered for its kind.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	subs := b.handlers[evt.EventKind()]
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)
	b.mu.RUnlock()

	if len(snapshot) == 0 {
		return
	}

	run := func() {
		for _, s := range snapshot {
			s.handler(evt)
		}
	}
	if b.sync {
		run()
		return
	}
	go run()
}
