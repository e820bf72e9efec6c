// Package formation implements the survivor core claiming protocol:
// placing a core block during prepare either founds a new survivor team
// or merges the builder into a nearby one.
package formation

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/kennarddh-mindustry/plague/internal/config"
	"github.com/kennarddh-mindustry/plague/internal/content"
	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/errors"
	"github.com/kennarddh-mindustry/plague/internal/team"
)

// Placement reports a successful core claim.
type Placement struct {
	Team team.Snapshot
	// Created is true for a founded team, false for a merge.
	Created bool
}

// Controller validates and applies survivor core placements. Its methods
// mutate the world and must run on the engine mutation goroutine.
type Controller struct {
	eng      engine.Engine
	registry *team.Registry
	catalog  *content.Catalog
	cfg      config.FormationConfig
	loadout  []config.ItemStack
	log      *zap.Logger
}

// NewController wires a formation controller.
func NewController(eng engine.Engine, registry *team.Registry, catalog *content.Catalog, cfg config.FormationConfig, loadout []config.ItemStack, log *zap.Logger) *Controller {
	return &Controller{
		eng:      eng,
		registry: registry,
		catalog:  catalog,
		cfg:      cfg,
		loadout:  loadout,
		log:      log,
	}
}

// PlaceCore runs the claim protocol for a core placement at (x, y).
// Every validation happens before the first engine-visible side effect;
// a rejected placement changes nothing.
func (c *Controller) PlaceCore(p engine.PlayerID, x, y int) (Placement, error) {
	if err := c.validFootprint(x, y); err != nil {
		return Placement{}, err
	}

	// Anti-rush rule: keep clear of the plague's cores.
	for _, core := range c.eng.Cores(engine.TeamPlague) {
		if tileDistance(x, y, core.X, core.Y) < c.cfg.MinPlagueCoreDistance {
			return Placement{}, errors.WithMetadata(errors.CodePlacementNearPlagueCore,
				"core placement inside plague exclusion zone",
				map[string]string{"Distance": strconv.Itoa(int(c.cfg.MinPlagueCoreDistance))})
		}
	}

	closest, distance, found := c.closestSurvivorCore(x, y)
	if found {
		if distance < c.cfg.MinAlliedCoreDistance {
			return Placement{}, errors.WithMetadata(errors.CodePlacementNearAlliedCore,
				"core placement too close to allied core",
				map[string]string{"Distance": strconv.Itoa(int(c.cfg.MinAlliedCoreDistance))})
		}
		return c.join(p, closest.Team, x, y)
	}
	return c.found(p, x, y)
}

// join merges the builder into the team owning the nearby core.
func (c *Controller) join(p engine.PlayerID, id engine.TeamID, x, y int) (Placement, error) {
	snap, err := c.registry.Join(id, p)
	if err != nil {
		return Placement{}, err
	}

	c.materialize(p, id, x, y)

	c.log.Info("survivor joined team by core placement",
		zap.String("player", string(p)),
		zap.Int("team", int(id)))
	return Placement{Team: snap}, nil
}

// found creates a fresh survivor team seeded with the match loadout.
func (c *Controller) found(p engine.PlayerID, x, y int) (Placement, error) {
	snap, err := c.registry.Create(p)
	if err != nil {
		return Placement{}, err
	}

	c.materialize(p, snap.ID, x, y)

	capacity := c.eng.StorageCapacity(snap.ID)
	for _, stack := range c.loadout {
		amount := stack.Amount
		if amount > capacity {
			amount = capacity
		}
		c.eng.AddItems(snap.ID, stack.Item, amount)
	}

	c.log.Info("survivor team founded",
		zap.String("player", string(p)),
		zap.Int("team", int(snap.ID)))
	return Placement{Team: snap, Created: true}, nil
}

// materialize applies the engine-visible effects shared by both paths:
// the core block appears, the core registers, the builder switches team
// and loses their current unit so no duplicate body survives the claim.
func (c *Controller) materialize(p engine.PlayerID, id engine.TeamID, x, y int) {
	c.eng.SetBlock(x, y, c.catalog.Core, id)
	c.eng.RegisterCore(x, y, id)
	c.eng.AssignTeam(p, id)
	c.eng.KillUnit(p)
}

// validFootprint checks every tile under the core block: it must exist,
// be empty, not be deep water, and sit on placeable terrain.
func (c *Controller) validFootprint(x, y int) error {
	size := c.eng.BlockSize(c.catalog.Core)
	offset := -(size - 1) / 2

	for dx := 0; dx < size; dx++ {
		for dy := 0; dy < size; dy++ {
			tile, ok := c.eng.Tile(x+offset+dx, y+offset+dy)
			if !ok || tile.Block != "" || tile.Deep || !tile.PlaceableOn {
				return errors.New(errors.CodePlacementInvalid, "invalid core position")
			}
		}
	}
	return nil
}

// closestSurvivorCore finds the nearest survivor-team core within the
// join radius.
func (c *Controller) closestSurvivorCore(x, y int) (engine.Core, float64, bool) {
	var (
		closest  engine.Core
		distance = math.MaxFloat64
		found    bool
	)
	for _, id := range c.eng.ActiveTeams() {
		if !engine.IsSurvivorSlot(id) {
			continue
		}
		for _, core := range c.eng.Cores(id) {
			d := tileDistance(x, y, core.X, core.Y)
			if d > c.cfg.JoinRadius {
				continue
			}
			if d < distance {
				closest = core
				distance = d
				found = true
			}
		}
	}
	return closest, distance, found
}

func tileDistance(x1, y1, x2, y2 int) float64 {
	return math.Hypot(float64(x1-x2), float64(y1-y2))
}
