package command

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/engine/sim"
	"github.com/kennarddh-mindustry/plague/internal/errors"
)

func newTestRegistry(t *testing.T) (*Registry, *sim.World) {
	t.Helper()
	world := sim.NewWorld(10, 10)
	world.AddPlayer("admin", engine.TeamPlague, true)
	world.AddPlayer("player", engine.TeamPlague, false)
	return NewRegistry(world, zap.NewNop()), world
}

func TestExecuteUnknownCommand(t *testing.T) {
	r, world := newTestRegistry(t)

	r.Execute("player", "nope", nil)

	msgs := world.Messages["player"]
	if len(msgs) != 1 || !strings.Contains(msgs[0], "nope") {
		t.Fatalf("messages = %v, want an unknown-command reply naming it", msgs)
	}
}

func TestExecuteAdminGating(t *testing.T) {
	r, world := newTestRegistry(t)
	var ran int
	r.MustRegister(Command{
		Name:      "wipe",
		AdminOnly: true,
		Handler:   func(Context) error { ran++; return nil },
	})

	r.Execute("player", "wipe", nil)
	if ran != 0 {
		t.Fatal("admin command ran for a regular player")
	}
	if msgs := world.Messages["player"]; len(msgs) != 1 {
		t.Fatalf("player not told, messages = %v", msgs)
	}

	r.Execute("admin", "wipe", nil)
	if ran != 1 {
		t.Fatal("admin command did not run for an admin")
	}
}

func TestExecuteForwardsHandlerErrors(t *testing.T) {
	r, world := newTestRegistry(t)
	r.MustRegister(Command{
		Name: "fail",
		Handler: func(Context) error {
			return errors.New(errors.CodeTeamNotMember, "not in a team")
		},
	})

	r.Execute("player", "fail", nil)

	msgs := world.Messages["player"]
	if len(msgs) != 1 || !strings.Contains(msgs[0], "not in any team") {
		t.Fatalf("messages = %v, want the localized rejection", msgs)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r, _ := newTestRegistry(t)
	cmd := Command{Name: "x", Handler: func(Context) error { return nil }}
	if err := r.Register(cmd); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(cmd); err == nil {
		t.Fatal("duplicate register accepted")
	}
	if err := r.Register(Command{Name: "y"}); err == nil {
		t.Fatal("handlerless command accepted")
	}
}

func TestCommandsListingRespectsAdmin(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.MustRegister(Command{Name: "b", Handler: func(Context) error { return nil }})
	r.MustRegister(Command{Name: "a", Handler: func(Context) error { return nil }})
	r.MustRegister(Command{Name: "z", AdminOnly: true, Handler: func(Context) error { return nil }})

	visible := r.Commands("player")
	if len(visible) != 2 || visible[0].Name != "a" || visible[1].Name != "b" {
		t.Fatalf("player listing = %v", visible)
	}
	if got := r.Commands("admin"); len(got) != 3 {
		t.Fatalf("admin listing hides commands: %v", got)
	}
}

func TestPlayerArgResolution(t *testing.T) {
	_, world := newTestRegistry(t)
	world.AddPlayer("Phalanx", engine.TeamPlague, false)

	if got, err := playerArg(world, []string{"player"}, 0); err != nil || got != "player" {
		t.Fatalf("exact match = %q, %v", got, err)
	}
	// Unique case-insensitive prefix resolves.
	if got, err := playerArg(world, []string{"pha"}, 0); err != nil || got != "Phalanx" {
		t.Fatalf("prefix match = %q, %v", got, err)
	}
	// Ambiguous prefixes are rejected rather than guessed.
	if _, err := playerArg(world, []string{"p"}, 0); !errors.IsCode(err, errors.CodeCommandBadArgument) {
		t.Fatalf("ambiguous prefix = %v, want bad-argument", err)
	}
	if _, err := playerArg(world, nil, 0); !errors.IsCode(err, errors.CodeCommandBadArgument) {
		t.Fatalf("missing arg = %v, want bad-argument", err)
	}
}

func TestIntArg(t *testing.T) {
	if n, err := intArg([]string{"42"}, 0); err != nil || n != 42 {
		t.Fatalf("intArg = %d, %v", n, err)
	}
	if _, err := intArg([]string{"forty"}, 0); !errors.IsCode(err, errors.CodeCommandBadArgument) {
		t.Fatalf("non-numeric = %v, want bad-argument", err)
	}
}
