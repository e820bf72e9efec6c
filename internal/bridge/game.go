// Package bridge glues the match state machine, team registry, rule
// engine and formation controller to a host engine: it subscribes to
// engine events, installs the action filters and owns the restart flow.
package bridge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kennarddh-mindustry/plague/internal/config"
	"github.com/kennarddh-mindustry/plague/internal/content"
	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/errors"
	"github.com/kennarddh-mindustry/plague/internal/formation"
	"github.com/kennarddh-mindustry/plague/internal/match"
	"github.com/kennarddh-mindustry/plague/internal/rules"
	"github.com/kennarddh-mindustry/plague/internal/team"
)

// Deps carries everything a Game composes. All fields are required.
type Deps struct {
	Engine     engine.Engine
	Executor   engine.Executor
	Bus        *engine.Bus
	Filters    *engine.FilterChain
	Machine    *match.Machine
	Registry   *team.Registry
	Bans       *rules.BanEngine
	Difficulty *rules.Difficulty
	Projector  *rules.Projector
	Formation  *formation.Controller
	Catalog    *content.Catalog
	Config     config.Game
	Logger     *zap.Logger
}

// Game orchestrates one plague match at a time. Event handlers run on
// bus goroutines, snapshot application state, then hop to the engine
// goroutine through the executor for world mutation.
type Game struct {
	eng       engine.Engine
	exec      engine.Executor
	bus       *engine.Bus
	filters   *engine.FilterChain
	machine   *match.Machine
	registry  *team.Registry
	bans      *rules.BanEngine
	diff      *rules.Difficulty
	projector *rules.Projector
	formation *formation.Controller
	catalog   *content.Catalog
	cfg       config.Game
	log       *zap.Logger
	locale    string

	// sleep is swapped for a no-op in tests.
	sleep func(time.Duration)

	mu         sync.Mutex
	matchID    string
	lastMinute int
	hudHidden  map[engine.PlayerID]bool
	syncGates  map[engine.PlayerID]*rate.Limiter
}

// New builds a game from its dependencies.
func New(d Deps) *Game {
	return &Game{
		eng:        d.Engine,
		exec:       d.Executor,
		bus:        d.Bus,
		filters:    d.Filters,
		machine:    d.Machine,
		registry:   d.Registry,
		bans:       d.Bans,
		diff:       d.Difficulty,
		projector:  d.Projector,
		formation:  d.Formation,
		catalog:    d.Catalog,
		cfg:        d.Config,
		log:        d.Logger,
		locale:     "en-US",
		sleep:      time.Sleep,
		lastMinute: -1,
		hudHidden:  make(map[engine.PlayerID]bool),
		syncGates:  make(map[engine.PlayerID]*rate.Limiter),
	}
}

// Attach subscribes the game to the bus and installs its action filters.
// Call once, before the first event is published.
func (g *Game) Attach() {
	g.bus.Subscribe(engine.KindPlay, engine.PriorityHigh, func(engine.Event) { g.onPlay() })
	g.bus.Subscribe(engine.KindUpdate, engine.PriorityNormal, func(engine.Event) { g.onUpdate() })
	g.bus.Subscribe(engine.KindBlockDestroyed, engine.PriorityNormal, func(e engine.Event) {
		g.onBlockDestroyed(e.(engine.BlockDestroyedEvent))
	})
	g.bus.Subscribe(engine.KindBuildSelect, engine.PriorityNormal, func(e engine.Event) {
		g.onBuildSelect(e.(engine.BuildSelectEvent))
	})
	g.bus.Subscribe(engine.KindUnitCreated, engine.PriorityNormal, func(e engine.Event) {
		g.onUnitCreated(e.(engine.UnitCreatedEvent))
	})
	g.bus.Subscribe(engine.KindPlayerJoin, engine.PriorityNormal, func(e engine.Event) {
		g.onPlayerJoin(e.(engine.PlayerJoinEvent))
	})
	g.bus.Subscribe(engine.KindPlayerLeave, engine.PriorityNormal, func(e engine.Event) {
		g.onPlayerLeave(e.(engine.PlayerLeaveEvent))
	})
	g.bus.Subscribe(engine.KindDoubleTap, engine.PriorityNormal, func(e engine.Event) {
		g.onDoubleTap(e.(engine.DoubleTapEvent))
	})

	g.installFilters()
}

// TeamFor resolves the team for a joining or respawning player: registry
// membership wins, everyone else waits in the lobby during prepare and
// is plague afterwards.
func (g *Game) TeamFor(p engine.PlayerID) engine.TeamID {
	if id, ok := g.registry.TeamOf(p); ok {
		return id
	}
	if g.machine.Phase() == match.Prepare {
		return engine.TeamLobby
	}
	return engine.TeamPlague
}

// RoleFor resolves the player's current role.
func (g *Game) RoleFor(p engine.PlayerID) rules.Role {
	return rules.RoleOf(g.TeamFor(p))
}

// onPlay initializes a freshly loaded world: the clock restarts, the
// difficulty cache and plague stock reset, and every connected player
// is placed.
func (g *Game) onPlay() {
	g.machine.StartMatch()
	g.diff.Reset()

	matchID := uuid.NewString()
	g.mu.Lock()
	g.matchID = matchID
	g.lastMinute = -1
	g.mu.Unlock()

	g.do(func() {
		g.eng.ApplyServerRules(rules.InitServerRules(g.cfg.Match, true))
		g.eng.SetEnemyCoreBuildRadius(0)
		g.eng.ClearItems(engine.TeamPlague)
		for _, p := range g.eng.Players() {
			g.placePlayer(p)
		}
	})
	g.log.Info("match started",
		zap.String("match_id", matchID),
		zap.Duration("prepare", g.cfg.Phases.Prepare.Duration))
}

// MatchID identifies the current match in logs.
func (g *Game) MatchID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.matchID
}

// placePlayer runs on the engine goroutine: assigns the player's team,
// spawns attackers at their strongest core and pushes the ruleset.
func (g *Game) placePlayer(p engine.PlayerID) {
	id := g.TeamFor(p)
	g.eng.AssignTeam(p, id)
	if id == engine.TeamPlague {
		if core, ok := strongestCore(g.eng.Cores(engine.TeamPlague)); ok {
			g.eng.SpawnAt(p, core)
		}
	}
	status := g.machine.Status()
	g.projector.Push(p, rules.RoleOf(id), status.Phase, status.Elapsed)
	g.showHUD(p, status)
}

// pushRules refreshes one player's client ruleset after a team change.
// Runs on the engine goroutine.
func (g *Game) pushRules(p engine.PlayerID, id engine.TeamID) {
	status := g.machine.Status()
	g.projector.Push(p, rules.RoleOf(id), status.Phase, status.Elapsed)
}

func strongestCore(cores []engine.Core) (engine.Core, bool) {
	var best engine.Core
	found := false
	for _, c := range cores {
		if !found || c.Level > best.Level {
			best = c
			found = true
		}
	}
	return best, found
}

// Restart ends the match in favor of winner and rotates to the next
// map. Only the first caller acts; concurrent restarts are absorbed by
// the state machine.
func (g *Game) Restart(winner engine.TeamID) {
	if !g.machine.BeginGameOver() {
		return
	}

	g.do(func() { g.eng.Broadcast(winnerBanner(winner)) })
	g.log.Info("match over", zap.Int("winner", int(winner)))

	g.registry.Reset()
	g.diff.Reset()
	g.mu.Lock()
	g.hudHidden = make(map[engine.PlayerID]bool)
	g.syncGates = make(map[engine.PlayerID]*rate.Limiter)
	g.mu.Unlock()

	next, ok := g.eng.NextMap()
	if !ok {
		g.log.Error("map rotation is empty, shutting down",
			zap.String("code", string(errors.CodeNoNextMap)))
		g.do(func() { g.eng.CloseServer() })
		return
	}

	g.sleep(g.cfg.Match.GameOverGrace.Duration)

	var loadErr error
	g.do(func() { loadErr = g.eng.LoadMap(next) })
	if loadErr != nil {
		g.log.Error("map load failed, shutting down",
			zap.String("map", next.Name),
			zap.String("code", string(errors.CodeMapLoadFailed)),
			zap.Error(loadErr))
		g.do(func() { g.eng.CloseServer() })
		return
	}

	g.onPlay()
}

func winnerBanner(winner engine.TeamID) string {
	switch winner {
	case engine.TeamPlague:
		return "[scarlet]The plague has consumed every survivor core. The plague wins!"
	case engine.TeamNature:
		return "[lime]The world reclaims the map. A new round begins."
	default:
		return "[green]The survivors endured. Survivors win!"
	}
}

// do runs fn on the engine mutation goroutine and waits for it.
func (g *Game) do(fn func()) {
	if err := g.exec.Do(context.Background(), fn); err != nil {
		g.log.Error("engine task failed", zap.Error(err))
	}
}

// tell sends a localized error to the player.
func (g *Game) tell(p engine.PlayerID, err error) {
	msg := errors.UserMessage(err, g.locale)
	g.exec.Submit(func() { g.eng.Message(p, fmt.Sprintf("[scarlet]%s", msg)) })
}
