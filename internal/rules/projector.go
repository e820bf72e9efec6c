package rules

import (
	"time"

	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/match"
)

// Projector recomputes and pushes per-player effective rule snapshots.
// The pushed rules are advisory: a modified client can ignore them, so
// they may drift from the server ruleset without harm. The action filter
// chain is the authoritative enforcement layer.
type Projector struct {
	eng  engine.Engine
	bans *BanEngine
	diff *Difficulty
}

// NewProjector wires a projector over the engine.
func NewProjector(eng engine.Engine, bans *BanEngine, diff *Difficulty) *Projector {
	return &Projector{eng: eng, bans: bans, diff: diff}
}

// Snapshot computes the effective rules for one role at one instant.
func (p *Projector) Snapshot(role Role, phase match.Phase, elapsed time.Duration) engine.Rules {
	r := engine.Rules{
		BannedBlocks:          p.bans.BannedBlocks(phase, role),
		BannedUnits:           p.bans.BannedUnits(phase, role),
		UnitDamageMultiplier:  1,
		UnitHealthMultiplier:  1,
		BlockDamageMultiplier: 1,
	}
	if role == RoleAttacker {
		m := p.diff.At(elapsed)
		r.UnitDamageMultiplier = m
		r.UnitHealthMultiplier = m
	}
	return r
}

// Push recomputes and sends one player's rules. Unassigned players keep
// the plain server rules and are skipped.
func (p *Projector) Push(player engine.PlayerID, role Role, phase match.Phase, elapsed time.Duration) {
	if role == RoleUnassigned {
		return
	}
	p.eng.PushRules(player, p.Snapshot(role, phase, elapsed))
}

// PushAll recomputes and sends rules for every connected player.
func (p *Projector) PushAll(roleOf func(engine.PlayerID) Role, phase match.Phase, elapsed time.Duration) {
	for _, player := range p.eng.Players() {
		p.Push(player, roleOf(player), phase, elapsed)
	}
}
