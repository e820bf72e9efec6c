package engine

import "github.com/kennarddh-mindustry/plague/internal/content"

// Kind discriminates callback event types.
type Kind int

const (
	// KindPlay fires when a match begins on a freshly loaded world.
	KindPlay Kind = iota
	// KindUpdate fires once per simulation tick.
	KindUpdate
	// KindBlockDestroyed fires after a block is destroyed.
	KindBlockDestroyed
	// KindBuildSelect fires when a player selects a build placement.
	KindBuildSelect
	// KindUnitCreated fires when a factory finishes a unit.
	KindUnitCreated
	// KindPlayerJoin fires when a player's connection is confirmed.
	KindPlayerJoin
	// KindPlayerLeave fires when a player disconnects.
	KindPlayerLeave
	// KindDoubleTap fires when a player double-taps a tile.
	KindDoubleTap
)

// Event is a callback delivered by the host engine.
type Event interface {
	EventKind() Kind
}

// PlayEvent marks the start of a match.
type PlayEvent struct{}

// UpdateEvent marks one simulation tick.
type UpdateEvent struct{}

// BlockDestroyedEvent reports a destroyed block.
type BlockDestroyedEvent struct {
	X, Y    int
	Block   content.Block
	Team    TeamID
	WasCore bool
}

// BuildSelectEvent reports a build placement intent.
type BuildSelectEvent struct {
	Player   PlayerID
	Team     TeamID
	X, Y     int
	Breaking bool
}

// UnitCreatedEvent reports a newly constructed unit.
type UnitCreatedEvent struct {
	Unit     content.Unit
	Team     TeamID
	SpawnerX int
	SpawnerY int
}

// PlayerJoinEvent reports a confirmed player connection. Rejoined is set
// when the same player identity was seen earlier in the match.
type PlayerJoinEvent struct {
	Player   PlayerID
	Rejoined bool
}

// PlayerLeaveEvent reports a disconnect.
type PlayerLeaveEvent struct {
	Player PlayerID
}

// DoubleTapEvent reports a double tap on a tile.
type DoubleTapEvent struct {
	Player PlayerID
	X, Y   int
}

// EventKind implements Event.
func (PlayEvent) EventKind() Kind           { return KindPlay }
func (UpdateEvent) EventKind() Kind         { return KindUpdate }
func (BlockDestroyedEvent) EventKind() Kind { return KindBlockDestroyed }
func (BuildSelectEvent) EventKind() Kind    { return KindBuildSelect }
func (UnitCreatedEvent) EventKind() Kind    { return KindUnitCreated }
func (PlayerJoinEvent) EventKind() Kind     { return KindPlayerJoin }
func (PlayerLeaveEvent) EventKind() Kind    { return KindPlayerLeave }
func (DoubleTapEvent) EventKind() Kind      { return KindDoubleTap }
