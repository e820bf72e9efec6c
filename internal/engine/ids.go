// Package engine defines the boundary to the hosting game engine: the
// command surface the game mode calls into, the callback events it
// receives, and the single-writer execution model engine mutations
// must go through.
package engine

// PlayerID identifies a connected player across reconnects.
type PlayerID string

// TeamID identifies an engine team slot.
type TeamID int

const (
	// TeamNature owns nothing; it doubles as the "no winner" outcome.
	TeamNature TeamID = 0
	// TeamPlague is the single attacker faction.
	TeamPlague TeamID = 3
	// TeamLobby holds players that have not committed to a side yet.
	TeamLobby TeamID = 5
	// FirstSurvivorID is the lowest team slot the survivor pool draws from.
	FirstSurvivorID TeamID = 7
	// TeamSlots is the total number of engine team slots.
	TeamSlots TeamID = 256
)

// IsSurvivorSlot reports whether id belongs to the survivor team pool.
func IsSurvivorSlot(id TeamID) bool {
	return id >= FirstSurvivorID && id < TeamSlots
}
