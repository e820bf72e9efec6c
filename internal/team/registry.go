// Package team owns the authoritative set of survivor teams: membership,
// ownership, lock state and kick blacklists, with atomic lifecycle
// operations.
package team

import (
	"fmt"
	"sync"

	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/errors"
)

// teamName renders the display name of a survivor team slot.
func teamName(id engine.TeamID) string {
	return fmt.Sprintf("team-%d", id)
}

// Snapshot is an immutable view of one survivor team.
type Snapshot struct {
	ID      engine.TeamID
	Owner   engine.PlayerID
	Members []engine.PlayerID
	Locked  bool
}

// LeaveResult reports what a leave operation did.
type LeaveResult struct {
	Team      engine.TeamID
	Remaining []engine.PlayerID
	// NewOwner is set when ownership moved to a remaining member.
	NewOwner engine.PlayerID
	// Destroyed is set when the leaver was the last member. The team id
	// is back in the pool and the blacklist is gone by the time the
	// caller sees this.
	Destroyed bool
}

// KickResult reports a completed kick.
type KickResult struct {
	Team      engine.TeamID
	Remaining []engine.PlayerID
}

type survivorTeam struct {
	mu        sync.Mutex
	id        engine.TeamID
	owner     engine.PlayerID
	members   map[engine.PlayerID]struct{}
	locked    bool
	blacklist map[engine.PlayerID]struct{}
}

// Registry is the concurrency-safe survivor team store. Membership reads
// go through a lock-free index so role resolution can run from any
// callback context; mutations serialize per team, and create/destroy
// serialize on the registry.
type Registry struct {
	// byPlayer maps PlayerID to engine.TeamID without locking readers.
	byPlayer sync.Map

	mu    sync.Mutex
	teams map[engine.TeamID]*survivorTeam
	first engine.TeamID
	limit engine.TeamID
}

// NewRegistry builds a registry drawing team ids from [first, limit).
func NewRegistry(first, limit engine.TeamID) *Registry {
	return &Registry{
		teams: make(map[engine.TeamID]*survivorTeam),
		first: first,
		limit: limit,
	}
}

// Create allocates a team id from the pool and creates a team with the
// founder as sole member and owner.
func (r *Registry) Create(founder engine.PlayerID) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.freeSlotLocked()
	if !ok {
		return Snapshot{}, errors.New(errors.CodeTeamNoFreeSlot, "survivor team pool exhausted")
	}

	t := &survivorTeam{
		id:        id,
		owner:     founder,
		members:   map[engine.PlayerID]struct{}{founder: {}},
		blacklist: make(map[engine.PlayerID]struct{}),
	}
	r.teams[id] = t
	r.byPlayer.Store(founder, id)
	return t.snapshotLocked(), nil
}

func (r *Registry) freeSlotLocked() (engine.TeamID, bool) {
	for id := r.first; id < r.limit; id++ {
		if _, taken := r.teams[id]; !taken {
			return id, true
		}
	}
	return 0, false
}

// Join adds a player to an existing team.
func (r *Registry) Join(id engine.TeamID, p engine.PlayerID) (Snapshot, error) {
	t, ok := r.get(id)
	if !ok {
		return Snapshot{}, errors.New(errors.CodeTeamNotFound, "survivor team data missing")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, barred := t.blacklist[p]; barred {
		return Snapshot{}, errors.WithMetadata(errors.CodeTeamBlacklisted, "player is blacklisted from team",
			map[string]string{"Team": teamName(id)})
	}
	if t.locked {
		return Snapshot{}, errors.WithMetadata(errors.CodeTeamLocked, "team is locked",
			map[string]string{"Team": teamName(id)})
	}

	t.members[p] = struct{}{}
	r.byPlayer.Store(p, id)
	return t.snapshotLocked(), nil
}

// Leave removes a player from their team. Ownership moves to an
// arbitrary remaining member when the owner leaves; the team is
// destroyed in the same operation when the last member leaves, so no
// observer ever sees an empty-but-alive team.
func (r *Registry) Leave(p engine.PlayerID) (LeaveResult, error) {
	id, ok := r.TeamOf(p)
	if !ok {
		return LeaveResult{}, errors.New(errors.CodeTeamNotMember, "player is not in a survivor team")
	}
	t, ok := r.get(id)
	if !ok {
		return LeaveResult{}, errors.New(errors.CodeTeamNotFound, "survivor team data missing")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, member := t.members[p]; !member {
		return LeaveResult{}, errors.New(errors.CodeTeamNotMember, "player is not in a survivor team")
	}

	delete(t.members, p)
	r.byPlayer.Delete(p)

	result := LeaveResult{Team: id, Remaining: memberList(t.members)}

	if len(t.members) == 0 {
		r.destroy(id)
		result.Destroyed = true
		return result, nil
	}
	if t.owner == p {
		for member := range t.members {
			t.owner = member
			break
		}
		result.NewOwner = t.owner
	}
	return result, nil
}

// Kick bars target from rejoining and removes them from the team. Only
// the owner may kick, only within their own team, and never themselves.
// The requester stays behind, so a kick can never empty a team.
func (r *Registry) Kick(requester, target engine.PlayerID) (KickResult, error) {
	id, ok := r.TeamOf(requester)
	if !ok {
		return KickResult{}, errors.New(errors.CodeTeamNotMember, "requester is not in a survivor team")
	}
	if requester == target {
		return KickResult{}, errors.New(errors.CodeTeamSelfTarget, "cannot kick yourself")
	}
	targetTeam, ok := r.TeamOf(target)
	if !ok || targetTeam != id {
		return KickResult{}, errors.New(errors.CodeTeamCrossTeam, "cannot kick other team's member")
	}
	t, ok := r.get(id)
	if !ok {
		return KickResult{}, errors.New(errors.CodeTeamNotFound, "survivor team data missing")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.owner != requester {
		return KickResult{}, errors.New(errors.CodeTeamNotOwner, "requester does not own the team")
	}
	if _, member := t.members[target]; !member {
		return KickResult{}, errors.New(errors.CodeTeamCrossTeam, "cannot kick other team's member")
	}

	t.blacklist[target] = struct{}{}
	delete(t.members, target)
	r.byPlayer.Delete(target)

	return KickResult{Team: id, Remaining: memberList(t.members)}, nil
}

// TransferOwnership hands the team to another current member.
func (r *Registry) TransferOwnership(requester, target engine.PlayerID) (Snapshot, error) {
	id, ok := r.TeamOf(requester)
	if !ok {
		return Snapshot{}, errors.New(errors.CodeTeamNotMember, "requester is not in a survivor team")
	}
	if requester == target {
		return Snapshot{}, errors.New(errors.CodeTeamSelfTarget, "cannot transfer ownership to yourself")
	}
	t, ok := r.get(id)
	if !ok {
		return Snapshot{}, errors.New(errors.CodeTeamNotFound, "survivor team data missing")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.owner != requester {
		return Snapshot{}, errors.New(errors.CodeTeamNotOwner, "requester does not own the team")
	}
	if _, member := t.members[target]; !member {
		return Snapshot{}, errors.New(errors.CodeTeamCrossTeam, "cannot transfer ownership to other team's member")
	}

	t.owner = target
	return t.snapshotLocked(), nil
}

// SetLocked gates new joins on the team.
func (r *Registry) SetLocked(requester engine.PlayerID, locked bool) (Snapshot, error) {
	id, ok := r.TeamOf(requester)
	if !ok {
		return Snapshot{}, errors.New(errors.CodeTeamNotMember, "requester is not in a survivor team")
	}
	t, ok := r.get(id)
	if !ok {
		return Snapshot{}, errors.New(errors.CodeTeamNotFound, "survivor team data missing")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.owner != requester {
		return Snapshot{}, errors.New(errors.CodeTeamNotOwner, "requester does not own the team")
	}

	t.locked = locked
	return t.snapshotLocked(), nil
}

// TeamOf resolves a player's survivor team without locking. Safe from
// any calling context, including the engine's team assigner.
func (r *Registry) TeamOf(p engine.PlayerID) (engine.TeamID, bool) {
	v, ok := r.byPlayer.Load(p)
	if !ok {
		return 0, false
	}
	return v.(engine.TeamID), true
}

// Blacklisted reports whether a player was kicked from the team.
func (r *Registry) Blacklisted(id engine.TeamID, p engine.PlayerID) bool {
	t, ok := r.get(id)
	if !ok {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, barred := t.blacklist[p]
	return barred
}

// Get returns a snapshot of the team.
func (r *Registry) Get(id engine.TeamID) (Snapshot, bool) {
	t, ok := r.get(id)
	if !ok {
		return Snapshot{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked(), true
}

// Remove deletes a team wholesale, returning its last snapshot. Used for
// the core-destroyed cascade, where the members are reassigned by the
// caller rather than leaving one by one.
func (r *Registry) Remove(id engine.TeamID) (Snapshot, bool) {
	t, ok := r.get(id)
	if !ok {
		return Snapshot{}, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	snap := t.snapshotLocked()
	for member := range t.members {
		r.byPlayer.Delete(member)
	}
	t.members = map[engine.PlayerID]struct{}{}
	r.destroy(id)
	return snap, true
}

// Count returns the number of live survivor teams.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.teams)
}

// Snapshots returns a snapshot of every live team.
func (r *Registry) Snapshots() []Snapshot {
	r.mu.Lock()
	ts := make([]*survivorTeam, 0, len(r.teams))
	for _, t := range r.teams {
		ts = append(ts, t)
	}
	r.mu.Unlock()

	out := make([]Snapshot, 0, len(ts))
	for _, t := range ts {
		t.mu.Lock()
		out = append(out, t.snapshotLocked())
		t.mu.Unlock()
	}
	return out
}

// Reset discards every team, returning all ids to the pool. Called when
// a match ends.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams = make(map[engine.TeamID]*survivorTeam)
	r.byPlayer.Range(func(key, _ any) bool {
		r.byPlayer.Delete(key)
		return true
	})
}

func (r *Registry) get(id engine.TeamID) (*survivorTeam, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	return t, ok
}

func (r *Registry) destroy(id engine.TeamID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.teams, id)
}

func (t *survivorTeam) snapshotLocked() Snapshot {
	return Snapshot{
		ID:      t.id,
		Owner:   t.owner,
		Members: memberList(t.members),
		Locked:  t.locked,
	}
}

func memberList(members map[engine.PlayerID]struct{}) []engine.PlayerID {
	out := make([]engine.PlayerID, 0, len(members))
	for m := range members {
		out = append(out, m)
	}
	return out
}
