// Package sim is an in-memory engine implementation. It backs the test
// suites and the headless server harness with a deterministic world:
// a tile grid, core registry, per-team storage and a recorded
// communication log instead of a network layer.
package sim

import (
	"fmt"
	"sync"

	"github.com/kennarddh-mindustry/plague/internal/content"
	"github.com/kennarddh-mindustry/plague/internal/engine"
)

type point struct{ x, y int }

// SpawnedUnit records a unit spawn or despawn.
type SpawnedUnit struct {
	Unit content.Unit
	Team engine.TeamID
	X, Y int
}

type playerState struct {
	name  string
	team  engine.TeamID
	admin bool
	alive bool
}

// World is a deterministic in-memory engine.Engine. All methods are
// safe for concurrent use; the mutation-goroutine discipline engines
// impose is still honored by callers, but the simulator does not
// require it.
type World struct {
	mu sync.Mutex

	width, height int
	tiles         map[point]engine.Tile
	cores         []engine.Core
	players       map[engine.PlayerID]*playerState
	joinOrder     []engine.PlayerID

	// teamItems is core-linked storage; tileItems is per-building
	// container contents, used by vaults.
	teamItems  map[engine.TeamID]map[string]int
	tileItems  map[point]map[string]int
	vaultLinks map[point]bool
	storageCap int

	serverRules   engine.ServerRules
	defaultRadius float64
	unitMults     map[engine.TeamID][2]float64
	blockDamage   map[engine.TeamID]float64
	stripped      content.UnitSet

	pushedRules map[engine.PlayerID]engine.Rules

	maps    []engine.MapInfo
	mapIdx  int
	current engine.MapInfo
	loads   int
	closed  bool

	blockSizes map[content.Block]int

	// Recorded effects, inspected by tests.
	Broadcasts   []string
	SpawnedUnits []SpawnedUnit
	Despawns     []SpawnedUnit
	Messages     map[engine.PlayerID][]string
	Popups       map[engine.PlayerID][]string
	UnitKills    []engine.PlayerID
	TeamWipes    []engine.TeamID
	CoreHeals    []engine.TeamID
	UnitHeals    []engine.TeamID
	Spawns       map[engine.PlayerID]engine.Core
	WorldResends []engine.PlayerID
}

// NewWorld builds an empty world of the given size. Every tile starts
// placeable and shallow.
func NewWorld(width, height int) *World {
	w := &World{
		width:       width,
		height:      height,
		tiles:       make(map[point]engine.Tile),
		players:     make(map[engine.PlayerID]*playerState),
		teamItems:   make(map[engine.TeamID]map[string]int),
		tileItems:   make(map[point]map[string]int),
		vaultLinks:  make(map[point]bool),
		storageCap:  4000,
		unitMults:   make(map[engine.TeamID][2]float64),
		blockDamage: make(map[engine.TeamID]float64),
		pushedRules: make(map[engine.PlayerID]engine.Rules),
		blockSizes: map[content.Block]int{
			"core-shard":      3,
			"core-foundation": 4,
			"core-nucleus":    5,
			"vault":           3,
			"container":       2,
		},
		defaultRadius: 38,
		Messages:      make(map[engine.PlayerID][]string),
		Popups:        make(map[engine.PlayerID][]string),
		Spawns:        make(map[engine.PlayerID]engine.Core),
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			w.tiles[point{x, y}] = engine.Tile{X: x, Y: y, PlaceableOn: true}
		}
	}
	return w
}

// --- world queries ---

func (w *World) Tile(x, y int) (engine.Tile, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	t, ok := w.tiles[point{x, y}]
	return t, ok
}

func (w *World) BlockSize(block content.Block) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if size, ok := w.blockSizes[block]; ok {
		return size
	}
	return 1
}

func (w *World) Cores(team engine.TeamID) []engine.Core {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []engine.Core
	for _, c := range w.cores {
		if c.Team == team {
			out = append(out, c)
		}
	}
	return out
}

func (w *World) ActiveTeams() []engine.TeamID {
	w.mu.Lock()
	defer w.mu.Unlock()
	seen := make(map[engine.TeamID]bool)
	var out []engine.TeamID
	for _, c := range w.cores {
		if !seen[c.Team] {
			seen[c.Team] = true
			out = append(out, c.Team)
		}
	}
	return out
}

func (w *World) PlayersOn(team engine.TeamID) []engine.PlayerID {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []engine.PlayerID
	for _, p := range w.joinOrder {
		if st, ok := w.players[p]; ok && st.team == team {
			out = append(out, p)
		}
	}
	return out
}

func (w *World) Players() []engine.PlayerID {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]engine.PlayerID, len(w.joinOrder))
	copy(out, w.joinOrder)
	return out
}

func (w *World) IsAdmin(p engine.PlayerID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	st, ok := w.players[p]
	return ok && st.admin
}

func (w *World) PlayerName(p engine.PlayerID) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if st, ok := w.players[p]; ok {
		return st.name
	}
	return string(p)
}

// --- world mutation ---

func (w *World) SetBlock(x, y int, block content.Block, team engine.TeamID) {
	size := w.BlockSize(block)

	w.mu.Lock()
	defer w.mu.Unlock()
	offset := -(size - 1) / 2
	for dx := 0; dx < size; dx++ {
		for dy := 0; dy < size; dy++ {
			pt := point{x + offset + dx, y + offset + dy}
			if t, ok := w.tiles[pt]; ok {
				t.Block = block
				t.BlockTeam = team
				w.tiles[pt] = t
			}
			// Replacing a building discards its container contents.
			delete(w.tileItems, pt)
			delete(w.vaultLinks, pt)
		}
	}
}

func (w *World) RegisterCore(x, y int, team engine.TeamID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	level := 1
	if t, ok := w.tiles[point{x, y}]; ok {
		switch t.Block {
		case "core-foundation":
			level = 2
		case "core-nucleus":
			level = 3
		}
	}
	w.cores = append(w.cores, engine.Core{X: x, Y: y, Team: team, Level: level})
}

func (w *World) AssignTeam(p engine.PlayerID, team engine.TeamID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	st, ok := w.players[p]
	if !ok {
		st = &playerState{name: string(p), alive: true}
		w.players[p] = st
		w.joinOrder = append(w.joinOrder, p)
	}
	st.team = team
}

func (w *World) KillUnit(p engine.PlayerID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if st, ok := w.players[p]; ok {
		st.alive = false
	}
	w.UnitKills = append(w.UnitKills, p)
}

func (w *World) KillTeamEntities(team engine.TeamID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for pt, t := range w.tiles {
		if t.Block != "" && t.BlockTeam == team {
			t.Block = ""
			t.BlockTeam = 0
			w.tiles[pt] = t
		}
	}
	kept := w.cores[:0]
	for _, c := range w.cores {
		if c.Team != team {
			kept = append(kept, c)
		}
	}
	w.cores = kept
	delete(w.teamItems, team)
	w.TeamWipes = append(w.TeamWipes, team)
}

func (w *World) SpawnUnit(unit content.Unit, team engine.TeamID, x, y int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.SpawnedUnits = append(w.SpawnedUnits, SpawnedUnit{Unit: unit, Team: team, X: x, Y: y})
}

func (w *World) DespawnUnit(unit content.Unit, team engine.TeamID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Despawns = append(w.Despawns, SpawnedUnit{Unit: unit, Team: team})
}

func (w *World) HealCores(team engine.TeamID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.CoreHeals = append(w.CoreHeals, team)
}

func (w *World) HealUnits(team engine.TeamID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.UnitHeals = append(w.UnitHeals, team)
}

func (w *World) SpawnAt(p engine.PlayerID, core engine.Core) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if st, ok := w.players[p]; ok {
		st.alive = true
	}
	w.Spawns[p] = core
}

// --- items ---

func (w *World) AddItems(team engine.TeamID, item string, amount int) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	stock := w.teamItems[team]
	if stock == nil {
		stock = make(map[string]int)
		w.teamItems[team] = stock
	}
	room := w.storageCap - stock[item]
	if amount > room {
		amount = room
	}
	if amount < 0 {
		amount = 0
	}
	stock[item] += amount
	return amount
}

func (w *World) CountItem(x, y int, item string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tileItems[point{x, y}][item]
}

func (w *World) RemoveItemsAt(x, y int, item string, amount int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	stock := w.tileItems[point{x, y}]
	if stock == nil {
		return
	}
	stock[item] -= amount
	if stock[item] <= 0 {
		delete(stock, item)
	}
}

func (w *World) ItemsAt(x, y int) map[string]int {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]int)
	for item, n := range w.tileItems[point{x, y}] {
		out[item] = n
	}
	return out
}

func (w *World) VaultLinkedToCore(x, y int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.vaultLinks[point{x, y}]
}

func (w *World) ClearItems(team engine.TeamID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.teamItems, team)
}

func (w *World) StorageCapacity(team engine.TeamID) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.storageCap
}

// --- client communication ---

func (w *World) Broadcast(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Broadcasts = append(w.Broadcasts, msg)
}

func (w *World) Message(p engine.PlayerID, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Messages[p] = append(w.Messages[p], msg)
}

func (w *World) Popup(p engine.PlayerID, msg string, seconds float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Popups[p] = append(w.Popups[p], msg)
}

func (w *World) PushRules(p engine.PlayerID, r engine.Rules) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pushedRules[p] = r
}

func (w *World) ResendWorld(p engine.PlayerID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.WorldResends = append(w.WorldResends, p)
}

// --- match rules ---

func (w *World) ApplyServerRules(r engine.ServerRules) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.serverRules = r
}

func (w *World) ServerRules() engine.ServerRules {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.serverRules
}

func (w *World) SetEnemyCoreBuildRadius(tiles float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.serverRules.EnemyCoreBuildRadius = tiles
}

func (w *World) DefaultEnemyCoreBuildRadius() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.defaultRadius
}

func (w *World) SetTeamUnitMultipliers(team engine.TeamID, damage, health float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.unitMults[team] = [2]float64{damage, health}
}

func (w *World) ScaleTeamBlockDamage(team engine.TeamID, factor float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.blockDamage[team] == 0 {
		w.blockDamage[team] = 1
	}
	w.blockDamage[team] *= factor
}

func (w *World) StripWeapons(units content.UnitSet) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stripped = units
}

// --- hosting ---

func (w *World) NextMap() (engine.MapInfo, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.maps) == 0 {
		return engine.MapInfo{}, false
	}
	m := w.maps[w.mapIdx%len(w.maps)]
	w.mapIdx++
	return m, true
}

// LoadMap resets the world to a fresh grid of the map's size. Cores,
// buildings, storage and per-team modifiers are discarded; connected
// players stay.
func (w *World) LoadMap(m engine.MapInfo) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("map %q has no dimensions", m.Name)
	}
	w.width, w.height = m.Width, m.Height
	w.tiles = make(map[point]engine.Tile, m.Width*m.Height)
	for x := 0; x < m.Width; x++ {
		for y := 0; y < m.Height; y++ {
			w.tiles[point{x, y}] = engine.Tile{X: x, Y: y, PlaceableOn: true}
		}
	}
	w.cores = nil
	w.teamItems = make(map[engine.TeamID]map[string]int)
	w.tileItems = make(map[point]map[string]int)
	w.vaultLinks = make(map[point]bool)
	w.unitMults = make(map[engine.TeamID][2]float64)
	w.blockDamage = make(map[engine.TeamID]float64)
	w.current = m
	w.loads++
	return nil
}

func (w *World) CloseServer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}
