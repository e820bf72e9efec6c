package rules

import (
	"github.com/kennarddh-mindustry/plague/internal/config"
	"github.com/kennarddh-mindustry/plague/internal/engine"
)

// InitServerRules builds the authoritative match-wide ruleset applied at
// host time and after every world reload. The engine's natural game-over
// detection is disabled: the state machine decides when the match ends.
// The enemy core build radius starts at zero so survivors can claim
// ground during prepare; it is restored at first phase.
func InitServerRules(cfg config.MatchConfig, hasMap bool) engine.ServerRules {
	unitCap := cfg.UnitCap
	if !hasMap {
		unitCap = cfg.UnitCapNoMap
	}

	return engine.ServerRules{
		ModeName:             "Plague",
		CanGameOver:          false,
		HideBannedBlocks:     true,
		ReactorExplosions:    false,
		UnitCapVariable:      false,
		UnitCap:              unitCap,
		EnemyCoreBuildRadius: 0,
	}
}
