package team

import (
	"testing"

	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/errors"
)

func newTestRegistry() *Registry {
	return NewRegistry(engine.FirstSurvivorID, engine.TeamSlots)
}

func TestCreateAssignsLowestFreeSlot(t *testing.T) {
	r := newTestRegistry()

	first, err := r.Create("alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID != engine.FirstSurvivorID {
		t.Fatalf("first team id = %d, want %d", first.ID, engine.FirstSurvivorID)
	}
	if first.Owner != "alice" {
		t.Fatalf("owner = %q, want alice", first.Owner)
	}

	second, err := r.Create("bob")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if second.ID != engine.FirstSurvivorID+1 {
		t.Fatalf("second team id = %d, want %d", second.ID, engine.FirstSurvivorID+1)
	}

	// Destroying the first team releases the lowest slot for reuse.
	if _, err := r.Leave("alice"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	third, err := r.Create("carol")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if third.ID != engine.FirstSurvivorID {
		t.Fatalf("reused team id = %d, want %d", third.ID, engine.FirstSurvivorID)
	}
}

func TestCreateExhaustsPool(t *testing.T) {
	r := NewRegistry(engine.FirstSurvivorID, engine.FirstSurvivorID+2)

	if _, err := r.Create("a"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := r.Create("b"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := r.Create("c")
	if !errors.IsCode(err, errors.CodeTeamNoFreeSlot) {
		t.Fatalf("expected no-free-slot error, got %v", err)
	}
}

func TestLeaveHandsOwnershipToRemainingMember(t *testing.T) {
	r := newTestRegistry()
	snap, _ := r.Create("owner")
	if _, err := r.Join(snap.ID, "mate"); err != nil {
		t.Fatalf("join: %v", err)
	}

	result, err := r.Leave("owner")
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if result.Destroyed {
		t.Fatal("team with a remaining member must survive")
	}
	if result.NewOwner != "mate" {
		t.Fatalf("new owner = %q, want mate", result.NewOwner)
	}

	got, ok := r.Get(snap.ID)
	if !ok {
		t.Fatal("team missing after handoff")
	}
	if got.Owner != "mate" {
		t.Fatalf("owner = %q, want mate", got.Owner)
	}
}

func TestLeaveLastMemberDestroysTeam(t *testing.T) {
	r := newTestRegistry()
	snap, _ := r.Create("solo")

	result, err := r.Leave("solo")
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if !result.Destroyed {
		t.Fatal("last leaver must destroy the team")
	}
	if _, ok := r.Get(snap.ID); ok {
		t.Fatal("destroyed team still visible")
	}
	if _, ok := r.TeamOf("solo"); ok {
		t.Fatal("leaver still indexed")
	}
	if r.Count() != 0 {
		t.Fatalf("count = %d, want 0", r.Count())
	}
}

func TestOwnerIsAlwaysMember(t *testing.T) {
	r := newTestRegistry()
	snap, _ := r.Create("owner")
	r.Join(snap.ID, "a")
	r.Join(snap.ID, "b")
	r.Leave("owner")
	r.Leave("a")

	for _, s := range r.Snapshots() {
		found := false
		for _, m := range s.Members {
			if m == s.Owner {
				found = true
			}
		}
		if !found {
			t.Fatalf("owner %q is not a member of team %d", s.Owner, s.ID)
		}
		if len(s.Members) == 0 {
			t.Fatalf("empty team %d observable", s.ID)
		}
	}
}

func TestKickBlacklistsTarget(t *testing.T) {
	r := newTestRegistry()
	snap, _ := r.Create("owner")
	r.Join(snap.ID, "pest")

	if _, err := r.Kick("owner", "pest"); err != nil {
		t.Fatalf("kick: %v", err)
	}
	if _, ok := r.TeamOf("pest"); ok {
		t.Fatal("kicked player still indexed")
	}

	// The kicked player cannot rejoin this team instance.
	_, err := r.Join(snap.ID, "pest")
	if !errors.IsCode(err, errors.CodeTeamBlacklisted) {
		t.Fatalf("expected blacklist rejection, got %v", err)
	}

	// But other teams remain open to them.
	other, _ := r.Create("elsewhere")
	if _, err := r.Join(other.ID, "pest"); err != nil {
		t.Fatalf("join other team: %v", err)
	}
}

func TestKickPermissions(t *testing.T) {
	r := newTestRegistry()
	snap, _ := r.Create("owner")
	r.Join(snap.ID, "mate")
	other, _ := r.Create("stranger")

	tests := []struct {
		name      string
		requester engine.PlayerID
		target    engine.PlayerID
		wantCode  errors.Code
	}{
		{"non-owner", "mate", "owner", errors.CodeTeamNotOwner},
		{"self", "owner", "owner", errors.CodeTeamSelfTarget},
		{"cross team", "owner", "stranger", errors.CodeTeamCrossTeam},
		{"outsider", "ghost", "mate", errors.CodeTeamNotMember},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Kick(tc.requester, tc.target)
			if !errors.IsCode(err, tc.wantCode) {
				t.Fatalf("Kick(%q, %q) = %v, want code %s", tc.requester, tc.target, err, tc.wantCode)
			}
		})
	}
	_ = other
}

func TestBlacklistDiesWithTeam(t *testing.T) {
	r := newTestRegistry()
	snap, _ := r.Create("owner")
	r.Join(snap.ID, "pest")
	r.Kick("owner", "pest")
	r.Leave("owner")

	// The slot is reused by a fresh team with a clean blacklist.
	fresh, _ := r.Create("newcomer")
	if fresh.ID != snap.ID {
		t.Fatalf("expected slot reuse, got %d", fresh.ID)
	}
	if _, err := r.Join(fresh.ID, "pest"); err != nil {
		t.Fatalf("stale blacklist leaked into new team: %v", err)
	}
}

func TestLockedTeamRejectsJoin(t *testing.T) {
	r := newTestRegistry()
	snap, _ := r.Create("owner")
	if _, err := r.SetLocked("owner", true); err != nil {
		t.Fatalf("lock: %v", err)
	}

	_, err := r.Join(snap.ID, "late")
	if !errors.IsCode(err, errors.CodeTeamLocked) {
		t.Fatalf("expected locked rejection, got %v", err)
	}

	if _, err := r.SetLocked("owner", false); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, err := r.Join(snap.ID, "late"); err != nil {
		t.Fatalf("join after unlock: %v", err)
	}
}

func TestTransferOwnership(t *testing.T) {
	r := newTestRegistry()
	snap, _ := r.Create("owner")
	r.Join(snap.ID, "mate")

	if _, err := r.TransferOwnership("mate", "owner"); !errors.IsCode(err, errors.CodeTeamNotOwner) {
		t.Fatalf("non-owner transfer: %v", err)
	}
	if _, err := r.TransferOwnership("owner", "owner"); !errors.IsCode(err, errors.CodeTeamSelfTarget) {
		t.Fatalf("self transfer: %v", err)
	}

	got, err := r.TransferOwnership("owner", "mate")
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if got.Owner != "mate" {
		t.Fatalf("owner = %q, want mate", got.Owner)
	}
}

func TestRemoveClearsMembership(t *testing.T) {
	r := newTestRegistry()
	snap, _ := r.Create("owner")
	r.Join(snap.ID, "mate")

	got, ok := r.Remove(snap.ID)
	if !ok {
		t.Fatal("remove failed")
	}
	if len(got.Members) != 2 {
		t.Fatalf("snapshot members = %d, want 2", len(got.Members))
	}
	if _, ok := r.TeamOf("owner"); ok {
		t.Fatal("owner still indexed after remove")
	}
	if _, ok := r.TeamOf("mate"); ok {
		t.Fatal("member still indexed after remove")
	}
	if r.Count() != 0 {
		t.Fatalf("count = %d, want 0", r.Count())
	}
}
