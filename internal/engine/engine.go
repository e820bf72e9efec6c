package engine

import "github.com/kennarddh-mindustry/plague/internal/content"

// Tile is a snapshot of one world tile.
type Tile struct {
	X, Y        int
	Block       content.Block // empty string when nothing is built
	BlockTeam   TeamID
	Deep        bool // deep water, unbuildable
	PlaceableOn bool
}

// Core is a snapshot of a registered core structure.
type Core struct {
	X, Y int
	Team TeamID
	// Level orders core blocks by strength; spawn preference picks the
	// highest level.
	Level int
}

// MapInfo describes a hostable map.
type MapInfo struct {
	Name   string
	Author string
	Width  int
	Height int
}

// Rules is the per-player effective ruleset pushed to a client. It is
// advisory: the action filter chain is the authoritative enforcement.
type Rules struct {
	BannedBlocks          content.BlockSet
	BannedUnits           content.UnitSet
	UnitDamageMultiplier  float64
	UnitHealthMultiplier  float64
	BlockDamageMultiplier float64
}

// ServerRules is the authoritative match-wide ruleset.
type ServerRules struct {
	ModeName             string
	CanGameOver          bool
	HideBannedBlocks     bool
	ReactorExplosions    bool
	UnitCapVariable      bool
	UnitCap              int
	EnemyCoreBuildRadius float64 // tiles; zero blocks building near enemy cores
}

// Engine is the command surface the game mode issues to the host engine.
// Mutating calls must only be made from the engine's mutation goroutine;
// use an Executor to get there.
type Engine interface {
	// World queries.
	Tile(x, y int) (Tile, bool)
	BlockSize(block content.Block) int
	Cores(team TeamID) []Core
	ActiveTeams() []TeamID
	PlayersOn(team TeamID) []PlayerID
	Players() []PlayerID
	IsAdmin(p PlayerID) bool
	PlayerName(p PlayerID) string

	// World mutation.
	SetBlock(x, y int, block content.Block, team TeamID)
	RegisterCore(x, y int, team TeamID)
	AssignTeam(p PlayerID, team TeamID)
	KillUnit(p PlayerID)
	KillTeamEntities(team TeamID)
	SpawnUnit(unit content.Unit, team TeamID, x, y int)
	DespawnUnit(unit content.Unit, team TeamID)
	HealCores(team TeamID)
	HealUnits(team TeamID)
	SpawnAt(p PlayerID, core Core)

	// Items.
	AddItems(team TeamID, item string, amount int) int
	CountItem(x, y int, item string) int
	RemoveItemsAt(x, y int, item string, amount int)
	ItemsAt(x, y int) map[string]int
	VaultLinkedToCore(x, y int) bool
	ClearItems(team TeamID)
	StorageCapacity(team TeamID) int

	// Client communication.
	Broadcast(msg string)
	Message(p PlayerID, msg string)
	Popup(p PlayerID, msg string, seconds float64)
	PushRules(p PlayerID, r Rules)
	ResendWorld(p PlayerID)

	// Match-wide rules.
	ApplyServerRules(r ServerRules)
	ServerRules() ServerRules
	SetEnemyCoreBuildRadius(tiles float64)
	DefaultEnemyCoreBuildRadius() float64
	SetTeamUnitMultipliers(team TeamID, damage, health float64)
	ScaleTeamBlockDamage(team TeamID, factor float64)
	StripWeapons(units content.UnitSet)

	// Hosting.
	NextMap() (MapInfo, bool)
	LoadMap(m MapInfo) error
	CloseServer()
}

// TeamAssigner resolves the team for a player joining or respawning after
// a world reload.
type TeamAssigner func(p PlayerID) TeamID
