package bridge

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/match"
)

// onUpdate is the per-tick driver: phase boundaries fire here, plague
// cores and lobby units regenerate, and once a minute the difficulty
// multiplier, pushed rulesets and HUD refresh.
func (g *Game) onUpdate() {
	for _, entered := range g.machine.AdvanceIfDue() {
		switch entered {
		case match.FirstPhase:
			if !g.enterFirstPhase() {
				// The round restarted; the rest of the crossed
				// boundaries belong to the discarded match.
				return
			}
		case match.SecondPhase:
			g.enterSecondPhase()
		case match.SuddenDeath:
			g.enterSuddenDeath()
		}
	}

	status := g.machine.Status()
	if status.Phase == match.GameOver {
		return
	}

	g.exec.Submit(func() {
		g.eng.HealCores(engine.TeamPlague)
		g.eng.HealUnits(engine.TeamLobby)
	})

	minute := int(status.Elapsed / time.Minute)
	g.mu.Lock()
	due := minute != g.lastMinute
	if due {
		g.lastMinute = minute
	}
	g.mu.Unlock()
	if due {
		g.minuteTick(status)
	}
}

// minuteTick applies the time-scaled plague buff and refreshes every
// player's ruleset and HUD.
func (g *Game) minuteTick(status match.Status) {
	factor := g.diff.At(status.Elapsed)
	g.exec.Submit(func() {
		g.eng.SetTeamUnitMultipliers(engine.TeamPlague, factor, factor)
		g.projector.PushAll(g.RoleFor, status.Phase, status.Elapsed)
		for _, p := range g.eng.Players() {
			g.showHUD(p, status)
		}
	})
}

// enterFirstPhase closes formation: the building truce ends, everyone
// still unassigned becomes plague, and a round with no survivor team
// restarts immediately. Returns false when it restarted the round.
func (g *Game) enterFirstPhase() bool {
	if g.registry.Count() == 0 {
		g.do(func() {
			g.eng.Broadcast("[yellow]No survivor team formed. Restarting the round.")
		})
		g.Restart(engine.TeamNature)
		return false
	}

	status := g.machine.Status()
	factor := g.diff.At(status.Elapsed)
	g.do(func() {
		g.eng.SetEnemyCoreBuildRadius(g.eng.DefaultEnemyCoreBuildRadius())
		for _, p := range g.eng.Players() {
			if _, survivor := g.registry.TeamOf(p); survivor {
				continue
			}
			g.eng.AssignTeam(p, engine.TeamPlague)
			g.eng.KillUnit(p)
		}
		g.eng.SetTeamUnitMultipliers(engine.TeamPlague, factor, factor)
		g.eng.Broadcast("[scarlet]The plague is loose. Survivors, hold your cores!")
		g.projector.PushAll(g.RoleFor, status.Phase, status.Elapsed)
	})
	g.log.Info("first phase started", zap.Int("teams", g.registry.Count()))
	return true
}

// enterSecondPhase buffs survivor block damage for the closing stretch.
func (g *Game) enterSecondPhase() {
	status := g.machine.Status()
	buff := g.cfg.Match.SurvivorBlockDamageBuff
	snapshots := g.registry.Snapshots()
	g.do(func() {
		for _, snap := range snapshots {
			g.eng.ScaleTeamBlockDamage(snap.ID, buff)
		}
		g.eng.Broadcast(fmt.Sprintf(
			"[orange]Second phase! Survivor structures now hit %.0f%% harder.", (buff-1)*100))
		g.projector.PushAll(g.RoleFor, status.Phase, status.Elapsed)
	})
	g.log.Info("second phase started", zap.Float64("block_damage_buff", buff))
}

// enterSuddenDeath announces the hold is over. The round keeps running
// until the last survivor core falls.
func (g *Game) enterSuddenDeath() {
	status := g.machine.Status()
	g.do(func() {
		g.eng.Broadcast("[green]The survivors held the line! Sudden death: last core standing.")
		g.projector.PushAll(g.RoleFor, status.Phase, status.Elapsed)
	})
	g.log.Info("sudden death started")
}

// Progress. Used by the /state command and the HUD.
func phaseLine(status match.Status) string {
	minutes := int(status.Elapsed / time.Minute)
	seconds := int(status.Elapsed/time.Second) % 60
	return fmt.Sprintf("%s  %02d:%02d", status.Phase, minutes, seconds)
}

// survivorsLine summarizes live teams for display.
func survivorsLine(count int) string {
	if count == 1 {
		return "1 survivor team"
	}
	return fmt.Sprintf("%d survivor teams", count)
}
