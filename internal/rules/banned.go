package rules

import (
	"github.com/kennarddh-mindustry/plague/internal/content"
	"github.com/kennarddh-mindustry/plague/internal/match"
)

// BanEngine maps (phase, role) to the effective banned block and unit
// sets. The mapping is pure: the result depends on nothing but the two
// inputs, so callers pass an explicitly snapshotted phase and cannot
// race a concurrent transition.
type BanEngine struct {
	catalog *content.Catalog

	survivorBlocks     content.BlockSet
	attackerPrepare    content.BlockSet
	attackerPlaying    content.BlockSet
	survivorUnits      content.UnitSet
	attackerEarlyUnits content.UnitSet
	attackerLateUnits  content.UnitSet
}

// NewBanEngine precomputes the per-tier set algebra over the catalog.
func NewBanEngine(catalog *content.Catalog) *BanEngine {
	closedConstructors := catalog.UnitConstructors.Minus(catalog.OpenConstructors)

	return &BanEngine{
		catalog: catalog,

		// Survivors never build unit constructors beyond the open tier.
		survivorBlocks: closedConstructors,

		// The plague additionally loses walls and power during prepare;
		// the constructor ban is lifted once play starts, walls and
		// power stay banned for the whole match.
		attackerPrepare: closedConstructors.Union(catalog.Walls, catalog.Power),
		attackerPlaying: closedConstructors.Union(catalog.Walls, catalog.Power).
			Minus(catalog.UnitConstructors),

		// Survivors keep only the always-allowed unit tier, all match.
		survivorUnits: catalog.AllUnits.Minus(catalog.AlwaysAllowedUnits),

		// Early phases: air and ship tiers stay banned for the plague.
		attackerEarlyUnits: catalog.AllUnits.
			Minus(catalog.AlwaysAllowedUnits, catalog.Ground, catalog.Naval, catalog.Tank, catalog.Mech),

		// From second phase on every restriction is lifted.
		attackerLateUnits: content.UnitSet{},
	}
}

// Catalog returns the content catalog the engine is computed over.
func (b *BanEngine) Catalog() *content.Catalog {
	return b.catalog
}

// BannedBlocks returns the blocks the role may not build in the phase.
func (b *BanEngine) BannedBlocks(phase match.Phase, role Role) content.BlockSet {
	switch role {
	case RoleAttacker:
		if phase == match.Prepare {
			return b.attackerPrepare
		}
		return b.attackerPlaying
	case RoleSurvivor:
		return b.survivorBlocks
	}
	return content.BlockSet{}
}

// BannedUnits returns the units the role may not produce in the phase.
func (b *BanEngine) BannedUnits(phase match.Phase, role Role) content.UnitSet {
	switch role {
	case RoleAttacker:
		if phase == match.Prepare || phase == match.FirstPhase {
			return b.attackerEarlyUnits
		}
		return b.attackerLateUnits
	case RoleSurvivor:
		return b.survivorUnits
	}
	return content.UnitSet{}
}
