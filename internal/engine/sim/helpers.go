package sim

import (
	"github.com/kennarddh-mindustry/plague/internal/content"
	"github.com/kennarddh-mindustry/plague/internal/engine"
)

// AddPlayer registers a connected player on the given team.
func (w *World) AddPlayer(p engine.PlayerID, team engine.TeamID, admin bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.players[p]; !ok {
		w.joinOrder = append(w.joinOrder, p)
	}
	w.players[p] = &playerState{name: string(p), team: team, admin: admin, alive: true}
}

// RemovePlayer drops a player from the world.
func (w *World) RemovePlayer(p engine.PlayerID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.players, p)
	kept := w.joinOrder[:0]
	for _, id := range w.joinOrder {
		if id != p {
			kept = append(kept, id)
		}
	}
	w.joinOrder = kept
}

// TeamOf returns the player's current team.
func (w *World) TeamOf(p engine.PlayerID) (engine.TeamID, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	st, ok := w.players[p]
	if !ok {
		return 0, false
	}
	return st.team, true
}

// Alive reports whether the player currently controls a unit.
func (w *World) Alive(p engine.PlayerID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	st, ok := w.players[p]
	return ok && st.alive
}

// SetTile overrides terrain flags on one tile.
func (w *World) SetTile(x, y int, deep, placeable bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	pt := point{x, y}
	if t, ok := w.tiles[pt]; ok {
		t.Deep = deep
		t.PlaceableOn = placeable
		w.tiles[pt] = t
	}
}

// RemoveCore unregisters the core at (x, y) and clears its block,
// simulating its destruction.
func (w *World) RemoveCore(x, y int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	kept := w.cores[:0]
	var team engine.TeamID
	for _, c := range w.cores {
		if c.X == x && c.Y == y {
			team = c.Team
			continue
		}
		kept = append(kept, c)
	}
	w.cores = kept
	pt := point{x, y}
	if t, ok := w.tiles[pt]; ok && t.BlockTeam == team {
		t.Block = ""
		t.BlockTeam = 0
		w.tiles[pt] = t
	}
}

// PlaceVault builds a vault owned by team, optionally core-linked and
// stocked with items.
func (w *World) PlaceVault(x, y int, team engine.TeamID, linked bool, stock map[string]int) {
	w.SetBlock(x, y, "vault", team)
	w.mu.Lock()
	defer w.mu.Unlock()
	pt := point{x, y}
	w.vaultLinks[pt] = linked
	items := make(map[string]int, len(stock))
	for item, n := range stock {
		items[item] = n
	}
	w.tileItems[pt] = items
}

// AddMaps appends to the map rotation.
func (w *World) AddMaps(maps ...engine.MapInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.maps = append(w.maps, maps...)
}

// ItemCount returns the team's core-linked stock of one item.
func (w *World) ItemCount(team engine.TeamID, item string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.teamItems[team][item]
}

// PushedRules returns the last ruleset pushed to the player.
func (w *World) PushedRules(p engine.PlayerID) (engine.Rules, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, ok := w.pushedRules[p]
	return r, ok
}

// UnitMultipliers returns the damage and health multipliers set for the
// team, defaulting to 1.
func (w *World) UnitMultipliers(team engine.TeamID) (damage, health float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	m, ok := w.unitMults[team]
	if !ok {
		return 1, 1
	}
	return m[0], m[1]
}

// BlockDamage returns the team's accumulated block damage factor.
func (w *World) BlockDamage(team engine.TeamID) float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if f, ok := w.blockDamage[team]; ok {
		return f
	}
	return 1
}

// Stripped returns the unit set whose weapons were removed.
func (w *World) Stripped() content.UnitSet {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stripped
}

// Loads returns how many times a map was loaded.
func (w *World) Loads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loads
}

// CurrentMap returns the last loaded map.
func (w *World) CurrentMap() engine.MapInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Closed reports whether the server was shut down.
func (w *World) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}
