// Package config holds tunable match constants. Defaults match the
// canonical plague timeline; a TOML file may override them for private
// servers.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so TOML overlays can write durations as
// strings like "5m" or "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Game is the root of the match tuning tree.
type Game struct {
	Phases    PhasesConfig    `toml:"phases"`
	Formation FormationConfig `toml:"formation"`
	Match     MatchConfig     `toml:"match"`
	Economy   EconomyConfig   `toml:"economy"`
}

// PhasesConfig fixes the nominal duration of each timed phase.
// Sudden death has no duration; it ends only by elimination.
type PhasesConfig struct {
	Prepare     Duration `toml:"prepare"`
	FirstPhase  Duration `toml:"first_phase"`
	SecondPhase Duration `toml:"second_phase"`
}

// FormationConfig bounds survivor core placement. Distances are in tiles.
type FormationConfig struct {
	MinPlagueCoreDistance float64 `toml:"min_plague_core_distance"` // anti-rush exclusion zone
	JoinRadius            float64 `toml:"join_radius"`              // placing inside joins the nearby team
	MinAlliedCoreDistance float64 `toml:"min_allied_core_distance"` // same-team cores may not cluster
}

// MatchConfig holds the remaining match-wide knobs.
type MatchConfig struct {
	GameOverGrace           Duration `toml:"game_over_grace"` // delay before the world reloads
	UnitCap                 int      `toml:"unit_cap"`
	UnitCapNoMap            int      `toml:"unit_cap_no_map"`
	SurvivorBlockDamageBuff float64  `toml:"survivor_block_damage_buff"` // applied at second phase
	SyncCooldown            Duration `toml:"sync_cooldown"`
}

// ItemStack is an item name with an amount.
type ItemStack struct {
	Item   string `toml:"item"`
	Amount int    `toml:"amount"`
}

// EconomyConfig covers starting loadouts and conversion pricing.
type EconomyConfig struct {
	Loadout       []ItemStack `toml:"loadout"`        // seeded into a fresh survivor core
	NewCoreCost   []ItemStack `toml:"new_core_cost"`  // price of converting a vault
	SupportReward []ItemStack `toml:"support_reward"` // paid out when a support unit is retired
}

// Default returns the canonical plague tuning.
func Default() Game {
	return Game{
		Phases: PhasesConfig{
			Prepare:     Duration{2 * time.Minute},
			FirstPhase:  Duration{45 * time.Minute},
			SecondPhase: Duration{15 * time.Minute},
		},
		Formation: FormationConfig{
			MinPlagueCoreDistance: 100,
			JoinRadius:            70,
			MinAlliedCoreDistance: 50,
		},
		Match: MatchConfig{
			GameOverGrace:           Duration{10 * time.Second},
			UnitCap:                 40,
			UnitCapNoMap:            48,
			SurvivorBlockDamageBuff: 1.3,
			SyncCooldown:            Duration{5 * time.Second},
		},
		Economy: EconomyConfig{
			Loadout: []ItemStack{
				{Item: "copper", Amount: 500},
				{Item: "lead", Amount: 250},
			},
			NewCoreCost: []ItemStack{
				{Item: "copper", Amount: 3000},
				{Item: "lead", Amount: 3000},
			},
			SupportReward: []ItemStack{
				{Item: "copper", Amount: 300},
			},
		},
	}
}

// Load returns the defaults overlaid with the TOML file at path.
// An empty path returns the defaults unchanged.
func Load(path string) (Game, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Game{}, fmt.Errorf("read tuning file: %w", err)
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Game{}, fmt.Errorf("parse tuning file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Game{}, fmt.Errorf("validate tuning: %w", err)
	}
	return cfg, nil
}

func (g Game) validate() error {
	if g.Phases.Prepare.Duration <= 0 || g.Phases.FirstPhase.Duration <= 0 || g.Phases.SecondPhase.Duration <= 0 {
		return fmt.Errorf("phase durations must be positive")
	}
	if g.Formation.JoinRadius <= g.Formation.MinAlliedCoreDistance {
		return fmt.Errorf("join radius must exceed the allied core distance")
	}
	if g.Match.UnitCap <= 0 {
		return fmt.Errorf("unit cap must be positive")
	}
	return nil
}
