package engine

import (
	"sort"
	"sync"

	"github.com/kennarddh-mindustry/plague/internal/content"
)

// ActionType discriminates privileged player actions.
type ActionType int

const (
	// ActionBuild places a block.
	ActionBuild ActionType = iota
	// ActionBreak removes a block.
	ActionBreak
	// ActionPickup lifts a block as payload.
	ActionPickup
	// ActionDropPayload drops a carried payload.
	ActionDropPayload
	// ActionRespawn is a self-service respawn request.
	ActionRespawn
	// ActionControl takes control of a unit or building.
	ActionControl
)

// Action describes one privileged player action awaiting permission.
type Action struct {
	Type   ActionType
	Player PlayerID
	Team   TeamID
	Block  content.Block // set for build/break/pickup
	X, Y   int
}

// Filter is a synchronous permission predicate. Returning false
// suppresses the action.
type Filter func(Action) bool

type prioritizedFilter struct {
	priority Priority
	order    int
	filter   Filter
}

// FilterChain is the ordered set of filters the engine consults before
// letting a privileged action take effect. Filters run in priority order
// and every filter must permit the action.
type FilterChain struct {
	mu      sync.RWMutex
	filters []prioritizedFilter
	nextID  int
}

// NewFilterChain returns an empty chain.
func NewFilterChain() *FilterChain {
	return &FilterChain{}
}

// Append registers a filter at the given priority.
func (c *FilterChain) Append(priority Priority, f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filters = append(c.filters, prioritizedFilter{
		priority: priority,
		order:    c.nextID,
		filter:   f,
	})
	c.nextID++
	sort.SliceStable(c.filters, func(i, j int) bool {
		return c.filters[i].priority < c.filters[j].priority
	})
}

// Permit reports whether every filter allows the action.
func (c *FilterChain) Permit(a Action) bool {
	c.mu.RLock()
	snapshot := make([]prioritizedFilter, len(c.filters))
	copy(snapshot, c.filters)
	c.mu.RUnlock()

	for _, f := range snapshot {
		if !f.filter(a) {
			return false
		}
	}
	return true
}
