package bridge

import (
	"fmt"
	"time"

	"github.com/kennarddh-mindustry/plague/internal/content"
	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/errors"
	"github.com/kennarddh-mindustry/plague/internal/match"
	"github.com/kennarddh-mindustry/plague/internal/team"
)

// LeaveTeam removes the requester from their survivor team. Their unit
// dies and they rejoin the pool the phase dictates: the lobby during
// prepare, the plague afterwards.
func (g *Game) LeaveTeam(p engine.PlayerID) error {
	result, err := g.registry.Leave(p)
	if err != nil {
		return err
	}

	g.do(func() {
		id := g.TeamFor(p)
		g.eng.AssignTeam(p, id)
		g.eng.KillUnit(p)
		g.pushRules(p, id)
		if result.Destroyed {
			g.eng.KillTeamEntities(result.Team)
			g.eng.Broadcast(fmt.Sprintf(
				"[scarlet]Team %d dissolved: its last member left.", int(result.Team)))
		}
	})
	if result.NewOwner != "" {
		owner := result.NewOwner
		g.exec.Submit(func() { g.eng.Message(owner, "[green]You now own your team.") })
	}
	if result.Destroyed {
		g.checkElimination()
	}
	return nil
}

// Defect moves the requester to the plague team, leaving their survivor
// team first if they belong to one.
func (g *Game) Defect(p engine.PlayerID) error {
	_, member := g.registry.TeamOf(p)
	if !member && g.machine.Phase() != match.Prepare {
		return errors.New(errors.CodeTeamPlagueMember, "already on the plague team")
	}

	var destroyed bool
	if member {
		result, err := g.registry.Leave(p)
		if err != nil {
			return err
		}
		destroyed = result.Destroyed
		if result.NewOwner != "" {
			owner := result.NewOwner
			g.exec.Submit(func() { g.eng.Message(owner, "[green]You now own your team.") })
		}
		if destroyed {
			g.exec.Submit(func() {
				g.eng.KillTeamEntities(result.Team)
				g.eng.Broadcast(fmt.Sprintf(
					"[scarlet]Team %d dissolved: its last member left.", int(result.Team)))
			})
		}
	}

	g.do(func() {
		g.eng.AssignTeam(p, engine.TeamPlague)
		g.eng.KillUnit(p)
		g.pushRules(p, engine.TeamPlague)
		g.eng.Broadcast(fmt.Sprintf("[scarlet]%s joined the plague.", g.eng.PlayerName(p)))
	})
	if destroyed {
		g.checkElimination()
	}
	return nil
}

// KickMember ejects target from the requester's team and bars them from
// rejoining it for the rest of this team's life.
func (g *Game) KickMember(requester, target engine.PlayerID) error {
	result, err := g.registry.Kick(requester, target)
	if err != nil {
		return err
	}

	g.do(func() {
		id := g.TeamFor(target)
		g.eng.AssignTeam(target, id)
		g.eng.KillUnit(target)
		g.pushRules(target, id)
		g.eng.Message(target, fmt.Sprintf(
			"[scarlet]You were kicked from team %d.", int(result.Team)))
	})
	return nil
}

// TransferOwnership hands the requester's team to target.
func (g *Game) TransferOwnership(requester, target engine.PlayerID) error {
	snap, err := g.registry.TransferOwnership(requester, target)
	if err != nil {
		return err
	}
	g.exec.Submit(func() {
		g.eng.Message(target, fmt.Sprintf("[green]You now own team %d.", int(snap.ID)))
	})
	return nil
}

// SetTeamLocked gates joins on the requester's team.
func (g *Game) SetTeamLocked(requester engine.PlayerID, locked bool) error {
	_, err := g.registry.SetLocked(requester, locked)
	return err
}

// TeamSnapshot returns the requester's team, if any.
func (g *Game) TeamSnapshot(p engine.PlayerID) (team.Snapshot, bool) {
	id, ok := g.registry.TeamOf(p)
	if !ok {
		return team.Snapshot{}, false
	}
	return g.registry.Get(id)
}

// Skip advances the match clock and immediately fires any phase
// boundaries the jump crossed.
func (g *Game) Skip(d time.Duration) (time.Duration, error) {
	elapsed, err := g.machine.Skip(d)
	if err != nil {
		return 0, err
	}
	g.onUpdate()
	return elapsed, nil
}

// ForceGameOver ends the round in favor of the given winner.
func (g *Game) ForceGameOver(winner engine.TeamID) {
	if g.machine.Phase() == match.SuddenDeath {
		g.machine.MarkEnded()
	}
	g.Restart(winner)
}

// SpawnUnitAt spawns a unit for a team. Admin tooling.
func (g *Game) SpawnUnitAt(unit content.Unit, id engine.TeamID, x, y int) error {
	if !g.bans.Catalog().AllUnits.Has(unit) {
		return errors.WithMetadata(errors.CodeCommandBadArgument,
			"unknown unit type", map[string]string{"Argument": string(unit)})
	}
	g.exec.Submit(func() { g.eng.SpawnUnit(unit, id, x, y) })
	return nil
}

// GrantItems adds items to a team's core storage. Admin tooling; the
// engine caps the amount at storage capacity.
func (g *Game) GrantItems(id engine.TeamID, item string, amount int) error {
	if amount <= 0 {
		return errors.WithMetadata(errors.CodeCommandBadArgument,
			"amount must be positive", map[string]string{"Argument": fmt.Sprintf("%d", amount)})
	}
	g.exec.Submit(func() { g.eng.AddItems(id, item, amount) })
	return nil
}

// FillStorage tops up every item the economy knows about for a team.
func (g *Game) FillStorage(id engine.TeamID) {
	g.exec.Submit(func() {
		capacity := g.eng.StorageCapacity(id)
		for _, stack := range g.cfg.Economy.Loadout {
			g.eng.AddItems(id, stack.Item, capacity)
		}
	})
}
