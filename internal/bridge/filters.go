package bridge

import (
	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/match"
	"github.com/kennarddh-mindustry/plague/internal/rules"
)

// installFilters registers the authoritative action filters. They run
// synchronously on the engine goroutine and must stay cheap: each one
// snapshots phase and role, nothing more.
func (g *Game) installFilters() {
	// Nothing changes the world once the round is decided.
	g.filters.Append(engine.PriorityImportant, func(a engine.Action) bool {
		if g.machine.Phase() != match.GameOver {
			return true
		}
		switch a.Type {
		case engine.ActionBuild, engine.ActionBreak, engine.ActionPickup, engine.ActionDropPayload:
			return false
		}
		return true
	})

	// Blocks never change hands as payloads, for anyone, in any phase.
	g.filters.Append(engine.PriorityHigh, func(a engine.Action) bool {
		return a.Type != engine.ActionPickup && a.Type != engine.ActionDropPayload
	})

	// Map power sources are shared infrastructure: never broken.
	g.filters.Append(engine.PriorityHigh, func(a engine.Action) bool {
		if a.Block != g.catalog.PowerSource {
			return true
		}
		return a.Type != engine.ActionBreak
	})

	// Banned blocks can not enter the world by direct build.
	g.filters.Append(engine.PriorityNormal, func(a engine.Action) bool {
		if a.Type != engine.ActionBuild {
			return true
		}
		role := rules.RoleOf(a.Team)
		if role == rules.RoleUnassigned {
			// Unassigned build attempts are claim gestures; the
			// formation handler owns them and no block is placed.
			return false
		}
		return !g.bans.BannedBlocks(g.machine.Phase(), role).Has(a.Block)
	})

	// Lobby players never respawn; they pick a team or the first-phase
	// sweep converts them.
	g.filters.Append(engine.PriorityNormal, func(a engine.Action) bool {
		if a.Type != engine.ActionRespawn {
			return true
		}
		return a.Team != engine.TeamLobby
	})
}
