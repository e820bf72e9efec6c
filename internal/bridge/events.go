package bridge

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/errors"
	"github.com/kennarddh-mindustry/plague/internal/formation"
	"github.com/kennarddh-mindustry/plague/internal/match"
	"github.com/kennarddh-mindustry/plague/internal/rules"
)

// onBlockDestroyed drives the team elimination cascade. Losing the last
// core infects every member, wipes the team's world presence and, when
// no survivor team remains, ends the match.
func (g *Game) onBlockDestroyed(evt engine.BlockDestroyedEvent) {
	if !evt.WasCore || !engine.IsSurvivorSlot(evt.Team) {
		return
	}
	phase := g.machine.Phase()
	if phase == match.GameOver {
		return
	}

	var remaining int
	g.do(func() { remaining = len(g.eng.Cores(evt.Team)) })
	if remaining > 0 {
		return
	}

	snap, ok := g.registry.Remove(evt.Team)
	if !ok {
		return
	}

	g.do(func() {
		for _, member := range snap.Members {
			g.eng.AssignTeam(member, engine.TeamPlague)
			g.eng.KillUnit(member)
			g.pushRules(member, engine.TeamPlague)
		}
		g.eng.KillTeamEntities(evt.Team)
		g.eng.Broadcast(fmt.Sprintf(
			"[scarlet]Team %d has fallen to the plague.", int(evt.Team)))
	})
	g.log.Info("survivor team eliminated",
		zap.Int("team", int(evt.Team)),
		zap.Int("members", len(snap.Members)))

	if g.registry.Count() > 0 || phase == match.Prepare {
		return
	}
	if g.machine.MarkEnded() {
		g.Restart(engine.TeamNature)
		return
	}
	g.Restart(engine.TeamPlague)
}

// onBuildSelect is the formation trigger: an unassigned player placing
// any block during prepare is claiming a core site.
func (g *Game) onBuildSelect(evt engine.BuildSelectEvent) {
	if evt.Breaking || g.machine.Phase() != match.Prepare {
		return
	}
	if rules.RoleOf(evt.Team) != rules.RoleUnassigned {
		return
	}

	var (
		placement formation.Placement
		err       error
	)
	g.do(func() { placement, err = g.formation.PlaceCore(evt.Player, evt.X, evt.Y) })
	if err != nil {
		g.tell(evt.Player, err)
		return
	}

	name := g.eng.PlayerName(evt.Player)
	verb := "joined"
	if placement.Created {
		verb = "founded"
	}
	g.exec.Submit(func() {
		g.pushRules(evt.Player, placement.Team.ID)
		g.eng.Broadcast(fmt.Sprintf("[green]%s %s team %d.", name, verb, int(placement.Team.ID)))
	})
}

// onUnitCreated retires support units the moment a survivor factory
// finishes one and pays the team the configured item reward.
func (g *Game) onUnitCreated(evt engine.UnitCreatedEvent) {
	if !engine.IsSurvivorSlot(evt.Team) || !g.catalog.SupportUnits.Has(evt.Unit) {
		return
	}
	g.exec.Submit(func() {
		g.eng.DespawnUnit(evt.Unit, evt.Team)
		for _, stack := range g.cfg.Economy.SupportReward {
			g.eng.AddItems(evt.Team, stack.Item, stack.Amount)
		}
	})
}

// onPlayerJoin places the player. First-time joiners get the greeting;
// a rejoining player lands straight back on their recorded team.
func (g *Game) onPlayerJoin(evt engine.PlayerJoinEvent) {
	g.do(func() {
		g.placePlayer(evt.Player)
		if !evt.Rejoined {
			g.eng.Message(evt.Player,
				"[lightgray]Plague: claim a core during prepare to survive, or join the plague.")
		}
	})
}

// onPlayerLeave keeps registry membership intact so a reconnecting
// player returns to their recorded team. Remaining members are told
// when their owner drops.
func (g *Game) onPlayerLeave(evt engine.PlayerLeaveEvent) {
	id, ok := g.registry.TeamOf(evt.Player)
	if !ok {
		return
	}
	snap, ok := g.registry.Get(id)
	if !ok || snap.Owner != evt.Player {
		return
	}

	g.exec.Submit(func() {
		for _, member := range snap.Members {
			if member == evt.Player {
				continue
			}
			g.eng.Message(member, "[lightgray]Your team's owner disconnected.")
		}
	})
}

// checkElimination ends the match if the departing team was the last one
// standing after prepare.
func (g *Game) checkElimination() {
	phase := g.machine.Phase()
	if g.registry.Count() > 0 || phase == match.Prepare || phase == match.GameOver {
		return
	}
	if g.machine.MarkEnded() {
		g.Restart(engine.TeamNature)
		return
	}
	g.Restart(engine.TeamPlague)
}

// onDoubleTap converts an owned, unlinked vault into a new core when it
// holds the conversion cost. Leftover contents move into the core.
func (g *Game) onDoubleTap(evt engine.DoubleTapEvent) {
	id, ok := g.registry.TeamOf(evt.Player)
	if !ok {
		return
	}

	var err error
	g.do(func() { err = g.convertVault(evt.Player, id, evt.X, evt.Y) })
	if err != nil {
		g.tell(evt.Player, err)
	}
}

// convertVault runs on the engine goroutine.
func (g *Game) convertVault(p engine.PlayerID, id engine.TeamID, x, y int) error {
	tile, ok := g.eng.Tile(x, y)
	if !ok || tile.Block != g.catalog.Vault || tile.BlockTeam != id {
		return nil
	}
	if g.eng.VaultLinkedToCore(x, y) {
		return nil
	}

	for _, stack := range g.cfg.Economy.NewCoreCost {
		if g.eng.CountItem(x, y, stack.Item) < stack.Amount {
			return errors.WithMetadata(errors.CodeVaultInsufficientItems,
				"vault lacks the conversion cost",
				map[string]string{
					"Item":   stack.Item,
					"Amount": fmt.Sprintf("%d", stack.Amount),
				})
		}
	}

	for _, stack := range g.cfg.Economy.NewCoreCost {
		g.eng.RemoveItemsAt(x, y, stack.Item, stack.Amount)
	}
	leftovers := g.eng.ItemsAt(x, y)

	g.eng.SetBlock(x, y, g.catalog.Core, id)
	g.eng.RegisterCore(x, y, id)
	for item, amount := range leftovers {
		g.eng.AddItems(id, item, amount)
	}
	g.eng.Message(p, "[green]Vault converted into a core.")
	return nil
}
