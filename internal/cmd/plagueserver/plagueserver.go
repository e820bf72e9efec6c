// Package plagueserver parses server flags and runs the headless game
// host.
package plagueserver

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kennarddh-mindustry/plague/internal/bridge"
	"github.com/kennarddh-mindustry/plague/internal/command"
	"github.com/kennarddh-mindustry/plague/internal/config"
	"github.com/kennarddh-mindustry/plague/internal/content"
	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/engine/sim"
	"github.com/kennarddh-mindustry/plague/internal/formation"
	"github.com/kennarddh-mindustry/plague/internal/match"
	platformconfig "github.com/kennarddh-mindustry/plague/internal/platform/config"
	"github.com/kennarddh-mindustry/plague/internal/platform/logging"
	"github.com/kennarddh-mindustry/plague/internal/rules"
	"github.com/kennarddh-mindustry/plague/internal/team"
)

// Config holds server command configuration.
type Config struct {
	Port       int    `env:"PORT" envDefault:"6567"`
	LogLevel   string `env:"PLAGUE_LOG_LEVEL" envDefault:"info"`
	TuningFile string `env:"PLAGUE_TUNING_FILE"`
	TickRate   int    `env:"PLAGUE_TICK_RATE" envDefault:"60"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformconfig.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The game server port")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.TuningFile, "tuning", cfg.TuningFile, "Path to a TOML tuning overlay")
	fs.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "Simulation ticks per second")
	if err := platformconfig.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run wires the game against the simulator engine and drives it until
// ctx is done or the server closes itself.
func Run(ctx context.Context, cfg Config) error {
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	tuning, err := config.Load(cfg.TuningFile)
	if err != nil {
		return err
	}
	catalog, err := content.Load()
	if err != nil {
		return err
	}
	if cfg.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", cfg.TickRate)
	}

	world := sim.NewWorld(300, 300)
	world.AddMaps(
		engine.MapInfo{Name: "caldera", Author: "rotation", Width: 300, Height: 300},
		engine.MapInfo{Name: "rift", Author: "rotation", Width: 350, Height: 250},
	)

	exec := engine.NewSerialExecutor(256)
	bus := engine.NewBus()
	filters := engine.NewFilterChain()
	machine := match.NewMachine(match.NewTimeline(
		tuning.Phases.Prepare.Duration, tuning.Phases.FirstPhase.Duration,
		tuning.Phases.SecondPhase.Duration), nil)
	registry := team.NewRegistry(engine.FirstSurvivorID, engine.TeamSlots)
	bans := rules.NewBanEngine(catalog)
	diff := rules.NewDifficulty()
	projector := rules.NewProjector(world, bans, diff)
	former := formation.NewController(world, registry, catalog, tuning.Formation,
		tuning.Economy.Loadout, log.Named("formation"))

	game := bridge.New(bridge.Deps{
		Engine:     world,
		Executor:   exec,
		Bus:        bus,
		Filters:    filters,
		Machine:    machine,
		Registry:   registry,
		Bans:       bans,
		Difficulty: diff,
		Projector:  projector,
		Formation:  former,
		Catalog:    catalog,
		Config:     tuning,
		Logger:     log.Named("game"),
	})
	game.Attach()

	commands := command.NewRegistry(world, log.Named("command"))
	command.RegisterAll(commands, game, world)

	execCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = exec.Run(execCtx) }()

	// Host flow: weaponless units are stripped once per process, the
	// base ruleset applies, then the first map goes up.
	if err := exec.Do(ctx, func() {
		world.StripWeapons(catalog.WeaponlessAtStart)
		world.ApplyServerRules(rules.InitServerRules(tuning.Match, true))
	}); err != nil {
		return err
	}

	first, ok := world.NextMap()
	if !ok {
		return fmt.Errorf("map rotation is empty")
	}
	var loadErr error
	if err := exec.Do(ctx, func() { loadErr = world.LoadMap(first) }); err != nil {
		return err
	}
	if loadErr != nil {
		return fmt.Errorf("load first map: %w", loadErr)
	}
	if err := exec.Do(ctx, func() {
		center := first.Width / 2
		world.SetBlock(center, center, catalog.Core, engine.TeamPlague)
		world.RegisterCore(center, center, engine.TeamPlague)
	}); err != nil {
		return err
	}

	log.Info("server up",
		zap.Int("port", cfg.Port),
		zap.String("map", first.Name),
		zap.Int("tick_rate", cfg.TickRate))

	bus.Publish(engine.PlayEvent{})

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TickRate))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if world.Closed() {
				log.Info("server closed")
				return nil
			}
			bus.Publish(engine.UpdateEvent{})
		}
	}
}
