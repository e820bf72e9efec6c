// Package rules computes the effective rule sets for every phase and
// role: banned blocks and units, the plague strength curve, and the
// per-player rule snapshots pushed to clients.
package rules

import "github.com/kennarddh-mindustry/plague/internal/engine"

// Role is a player's side in the match.
type Role int

const (
	// RoleUnassigned players have not committed to a side.
	RoleUnassigned Role = iota
	// RoleAttacker is the plague faction.
	RoleAttacker
	// RoleSurvivor players belong to a survivor team.
	RoleSurvivor
)

// String returns the display name of the role.
func (r Role) String() string {
	switch r {
	case RoleAttacker:
		return "Plague"
	case RoleSurvivor:
		return "Survivor"
	}
	return "Unassigned"
}

// RoleOf resolves the role implied by an engine team slot.
func RoleOf(team engine.TeamID) Role {
	switch {
	case team == engine.TeamPlague:
		return RoleAttacker
	case engine.IsSurvivorSlot(team):
		return RoleSurvivor
	}
	return RoleUnassigned
}
