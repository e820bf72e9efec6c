package bridge

import (
	"fmt"

	"golang.org/x/time/rate"

	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/errors"
	"github.com/kennarddh-mindustry/plague/internal/match"
)

// showHUD renders the per-minute status popup. Runs on the engine
// goroutine.
func (g *Game) showHUD(p engine.PlayerID, status match.Status) {
	g.mu.Lock()
	hidden := g.hudHidden[p]
	g.mu.Unlock()
	if hidden {
		return
	}

	text := fmt.Sprintf("[accent]%s[]\n%s\nPlague strength x%.2f",
		phaseLine(status),
		survivorsLine(g.registry.Count()),
		g.diff.At(status.Elapsed))
	g.eng.Popup(p, text, 55)
}

// ToggleHUD flips HUD visibility for the player and reports the new
// state.
func (g *Game) ToggleHUD(p engine.PlayerID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hudHidden[p] = !g.hudHidden[p]
	return !g.hudHidden[p]
}

// Sync resends the world to the player, rate limited per player so the
// resend cannot be spammed into a denial of service.
func (g *Game) Sync(p engine.PlayerID) error {
	g.mu.Lock()
	gate, ok := g.syncGates[p]
	if !ok {
		gate = rate.NewLimiter(rate.Every(g.cfg.Match.SyncCooldown.Duration), 1)
		g.syncGates[p] = gate
	}
	g.mu.Unlock()

	if !gate.Allow() {
		return errors.New(errors.CodeSyncCooldown, "sync requested too soon")
	}
	g.exec.Submit(func() { g.eng.ResendWorld(p) })
	return nil
}

// StateLine renders the /state summary.
func (g *Game) StateLine() string {
	status := g.machine.Status()
	return fmt.Sprintf("%s | %s | plague strength x%.2f",
		phaseLine(status),
		survivorsLine(g.registry.Count()),
		g.diff.At(status.Elapsed))
}
