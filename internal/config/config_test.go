package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Phases.Prepare.Duration != 2*time.Minute {
		t.Fatalf("prepare = %v, want 2m", cfg.Phases.Prepare)
	}
	if cfg.Phases.FirstPhase.Duration != 45*time.Minute {
		t.Fatalf("first phase = %v, want 45m", cfg.Phases.FirstPhase)
	}
	if cfg.Phases.SecondPhase.Duration != 15*time.Minute {
		t.Fatalf("second phase = %v, want 15m", cfg.Phases.SecondPhase)
	}
	if cfg.Formation.MinPlagueCoreDistance != 100 {
		t.Fatalf("plague distance = %v, want 100", cfg.Formation.MinPlagueCoreDistance)
	}
	if cfg.Formation.JoinRadius != 70 {
		t.Fatalf("join radius = %v, want 70", cfg.Formation.JoinRadius)
	}
	if cfg.Formation.MinAlliedCoreDistance != 50 {
		t.Fatalf("allied distance = %v, want 50", cfg.Formation.MinAlliedCoreDistance)
	}
	if cfg.Match.SurvivorBlockDamageBuff != 1.3 {
		t.Fatalf("block damage buff = %v, want 1.3", cfg.Match.SurvivorBlockDamageBuff)
	}
	if len(cfg.Economy.Loadout) == 0 || len(cfg.Economy.NewCoreCost) == 0 {
		t.Fatal("economy defaults missing")
	}
	if err := cfg.validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Match.UnitCap != Default().Match.UnitCap {
		t.Fatalf("unit cap = %d, want default %d", cfg.Match.UnitCap, Default().Match.UnitCap)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	overlay := `
[phases]
prepare = "5m0s"

[match]
unit_cap = 60
`
	if err := os.WriteFile(path, []byte(overlay), 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Phases.Prepare.Duration != 5*time.Minute {
		t.Fatalf("prepare = %v, want 5m", cfg.Phases.Prepare)
	}
	if cfg.Match.UnitCap != 60 {
		t.Fatalf("unit cap = %d, want 60", cfg.Match.UnitCap)
	}
	// Untouched keys keep their defaults.
	if cfg.Phases.FirstPhase.Duration != 45*time.Minute {
		t.Fatalf("first phase = %v, want default 45m", cfg.Phases.FirstPhase)
	}
	if cfg.Formation.JoinRadius != 70 {
		t.Fatalf("join radius = %v, want default 70", cfg.Formation.JoinRadius)
	}
}

func TestLoadRejectsInvalidOverlay(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
	}{
		{"zero phase", "[phases]\nprepare = \"0s\"\n"},
		{"join radius below allied distance", "[formation]\njoin_radius = 40.0\n"},
		{"zero unit cap", "[match]\nunit_cap = 0\n"},
		{"malformed toml", "[phases\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tuning.toml")
			if err := os.WriteFile(path, []byte(tc.overlay), 0o600); err != nil {
				t.Fatalf("write overlay: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("invalid overlay accepted")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
