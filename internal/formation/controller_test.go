package formation

import (
	"testing"

	"go.uber.org/zap"

	"github.com/kennarddh-mindustry/plague/internal/config"
	"github.com/kennarddh-mindustry/plague/internal/content"
	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/engine/sim"
	"github.com/kennarddh-mindustry/plague/internal/errors"
	"github.com/kennarddh-mindustry/plague/internal/team"
)

type fixture struct {
	world      *sim.World
	registry   *team.Registry
	controller *Controller
	catalog    *content.Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := content.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	cfg := config.Default()
	world := sim.NewWorld(300, 300)
	registry := team.NewRegistry(engine.FirstSurvivorID, engine.TeamSlots)
	controller := NewController(world, registry, catalog, cfg.Formation,
		cfg.Economy.Loadout, zap.NewNop())

	// The plague core sits in one corner so most of the map is claimable.
	world.SetBlock(5, 5, catalog.Core, engine.TeamPlague)
	world.RegisterCore(5, 5, engine.TeamPlague)

	world.AddPlayer("alice", engine.TeamLobby, false)
	world.AddPlayer("bob", engine.TeamLobby, false)
	return &fixture{world: world, registry: registry, controller: controller, catalog: catalog}
}

func TestPlaceCoreFoundsTeam(t *testing.T) {
	f := newFixture(t)

	placement, err := f.controller.PlaceCore("alice", 200, 200)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if !placement.Created {
		t.Fatal("expected a founded team")
	}
	if placement.Team.ID != engine.FirstSurvivorID {
		t.Fatalf("team id = %d, want %d", placement.Team.ID, engine.FirstSurvivorID)
	}

	// The world reflects the claim: core block, core registration, team
	// assignment, dead lobby unit, seeded loadout.
	tile, _ := f.world.Tile(200, 200)
	if tile.Block != f.catalog.Core || tile.BlockTeam != placement.Team.ID {
		t.Fatalf("tile = %+v, want %s owned by %d", tile, f.catalog.Core, placement.Team.ID)
	}
	if cores := f.world.Cores(placement.Team.ID); len(cores) != 1 {
		t.Fatalf("cores = %d, want 1", len(cores))
	}
	if id, _ := f.world.TeamOf("alice"); id != placement.Team.ID {
		t.Fatalf("player team = %d, want %d", id, placement.Team.ID)
	}
	if f.world.Alive("alice") {
		t.Fatal("claiming unit must die")
	}
	for _, stack := range config.Default().Economy.Loadout {
		if got := f.world.ItemCount(placement.Team.ID, stack.Item); got != stack.Amount {
			t.Fatalf("loadout %s = %d, want %d", stack.Item, got, stack.Amount)
		}
	}
}

func TestPlaceCoreJoinsNearbyTeam(t *testing.T) {
	f := newFixture(t)

	founded, err := f.controller.PlaceCore("alice", 200, 200)
	if err != nil {
		t.Fatalf("found: %v", err)
	}

	// Bob claims inside the join radius but outside the allied minimum.
	joined, err := f.controller.PlaceCore("bob", 260, 200)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if joined.Created {
		t.Fatal("expected a merge, not a new team")
	}
	if joined.Team.ID != founded.Team.ID {
		t.Fatalf("joined team %d, want %d", joined.Team.ID, founded.Team.ID)
	}
	if len(joined.Team.Members) != 2 {
		t.Fatalf("members = %d, want 2", len(joined.Team.Members))
	}
	// A merged claim never receives a loadout twice.
	loadout := config.Default().Economy.Loadout[0]
	if got := f.world.ItemCount(founded.Team.ID, loadout.Item); got != loadout.Amount {
		t.Fatalf("loadout %s = %d after join, want %d", loadout.Item, got, loadout.Amount)
	}
}

func TestPlaceCoreRejections(t *testing.T) {
	f := newFixture(t)
	if _, err := f.controller.PlaceCore("alice", 200, 200); err != nil {
		t.Fatalf("seed team: %v", err)
	}
	f.world.SetTile(100, 100, true, true) // deep water
	f.world.AddPlayer("carol", engine.TeamLobby, false)

	tests := []struct {
		name     string
		x, y     int
		wantCode errors.Code
	}{
		{"off map", -5, 10, errors.CodePlacementInvalid},
		{"deep water", 100, 100, errors.CodePlacementInvalid},
		{"occupied", 200, 200, errors.CodePlacementInvalid},
		{"near plague core", 10, 10, errors.CodePlacementNearPlagueCore},
		{"near allied core", 210, 200, errors.CodePlacementNearAlliedCore},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := f.registry.Count()
			_, err := f.controller.PlaceCore("carol", tc.x, tc.y)
			if !errors.IsCode(err, tc.wantCode) {
				t.Fatalf("PlaceCore(%d, %d) = %v, want code %s", tc.x, tc.y, err, tc.wantCode)
			}
			// A rejection leaves no trace.
			if f.registry.Count() != before {
				t.Fatal("rejected placement mutated the registry")
			}
			if f.world.Alive("carol") != true {
				t.Fatal("rejected placement killed the unit")
			}
		})
	}
}

func TestPlaceCoreHonorsBlacklistAndLock(t *testing.T) {
	f := newFixture(t)
	founded, err := f.controller.PlaceCore("alice", 200, 200)
	if err != nil {
		t.Fatalf("seed team: %v", err)
	}

	f.world.AddPlayer("pest", engine.TeamLobby, false)
	if _, err := f.registry.Join(founded.Team.ID, "pest"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := f.registry.Kick("alice", "pest"); err != nil {
		t.Fatalf("kick: %v", err)
	}

	_, err = f.controller.PlaceCore("pest", 260, 200)
	if !errors.IsCode(err, errors.CodeTeamBlacklisted) {
		t.Fatalf("blacklisted claim = %v, want blacklist rejection", err)
	}

	if _, err := f.registry.SetLocked("alice", true); err != nil {
		t.Fatalf("lock: %v", err)
	}
	_, err = f.controller.PlaceCore("bob", 200, 260)
	if !errors.IsCode(err, errors.CodeTeamLocked) {
		t.Fatalf("locked claim = %v, want locked rejection", err)
	}
}
