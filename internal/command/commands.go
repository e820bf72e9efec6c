package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kennarddh-mindustry/plague/internal/bridge"
	"github.com/kennarddh-mindustry/plague/internal/content"
	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/errors"
)

// RegisterAll wires the full command set against a game.
func RegisterAll(r *Registry, g *bridge.Game, eng engine.Engine) {
	r.MustRegister(Command{
		Name:        "plague",
		Description: "Abandon your team and join the plague.",
		Handler: func(ctx Context) error {
			return g.Defect(ctx.Player)
		},
	})

	r.MustRegister(Command{
		Name:        "state",
		Description: "Show phase, clock and surviving teams.",
		Handler: func(ctx Context) error {
			eng.Message(ctx.Player, g.StateLine())
			return nil
		},
	})

	r.MustRegister(Command{
		Name:        "hud",
		Description: "Toggle the per-minute status popup.",
		Handler: func(ctx Context) error {
			if g.ToggleHUD(ctx.Player) {
				eng.Message(ctx.Player, "[green]HUD enabled.")
			} else {
				eng.Message(ctx.Player, "[lightgray]HUD hidden.")
			}
			return nil
		},
	})

	r.MustRegister(Command{
		Name:        "sync",
		Description: "Resend the world state.",
		Handler: func(ctx Context) error {
			return g.Sync(ctx.Player)
		},
	})

	r.MustRegister(Command{
		Name:        "teamleave",
		Description: "Leave your survivor team.",
		Handler: func(ctx Context) error {
			return g.LeaveTeam(ctx.Player)
		},
	})

	r.MustRegister(Command{
		Name:        "teamkick",
		Usage:       "<player>",
		Description: "Kick a member from your team and bar them from rejoining.",
		Handler: func(ctx Context) error {
			target, err := playerArg(eng, ctx.Args, 0)
			if err != nil {
				return err
			}
			return g.KickMember(ctx.Player, target)
		},
	})

	r.MustRegister(Command{
		Name:        "teamtransferownership",
		Usage:       "<player>",
		Description: "Hand team ownership to another member.",
		Handler: func(ctx Context) error {
			target, err := playerArg(eng, ctx.Args, 0)
			if err != nil {
				return err
			}
			return g.TransferOwnership(ctx.Player, target)
		},
	})

	r.MustRegister(Command{
		Name:        "teamlock",
		Usage:       "<on|off>",
		Description: "Open or close your team to new members.",
		Handler: func(ctx Context) error {
			mode, err := stringArg(ctx.Args, 0)
			if err != nil {
				return err
			}
			switch mode {
			case "on":
				return g.SetTeamLocked(ctx.Player, true)
			case "off":
				return g.SetTeamLocked(ctx.Player, false)
			}
			return badArg(mode)
		},
	})

	r.MustRegister(Command{
		Name:        "skiptime",
		Usage:       "<minutes>",
		Description: "Advance the match clock.",
		AdminOnly:   true,
		Handler: func(ctx Context) error {
			minutes, err := intArg(ctx.Args, 0)
			if err != nil {
				return err
			}
			if minutes < 0 {
				return badArg(strconv.Itoa(minutes))
			}
			elapsed, err := g.Skip(time.Duration(minutes) * time.Minute)
			if err != nil {
				return badArg(strconv.Itoa(minutes))
			}
			eng.Message(ctx.Player, fmt.Sprintf("[accent]Match clock at %s.", elapsed.Round(time.Second)))
			return nil
		},
	})

	r.MustRegister(Command{
		Name:        "gameover",
		Usage:       "[winner]",
		Description: "End the round and rotate the map.",
		AdminOnly:   true,
		Handler: func(ctx Context) error {
			winner := engine.TeamNature
			if len(ctx.Args) > 0 {
				n, err := intArg(ctx.Args, 0)
				if err != nil {
					return err
				}
				winner = engine.TeamID(n)
			}
			g.ForceGameOver(winner)
			return nil
		},
	})

	r.MustRegister(Command{
		Name:        "spawnunit",
		Usage:       "<unit> <team> <x> <y>",
		Description: "Spawn a unit for a team.",
		AdminOnly:   true,
		Handler: func(ctx Context) error {
			unit, err := stringArg(ctx.Args, 0)
			if err != nil {
				return err
			}
			id, err := intArg(ctx.Args, 1)
			if err != nil {
				return err
			}
			x, err := intArg(ctx.Args, 2)
			if err != nil {
				return err
			}
			y, err := intArg(ctx.Args, 3)
			if err != nil {
				return err
			}
			return g.SpawnUnitAt(content.Unit(unit), engine.TeamID(id), x, y)
		},
	})

	r.MustRegister(Command{
		Name:        "additem",
		Usage:       "<team> <item> <amount>",
		Description: "Add items to a team's core storage.",
		AdminOnly:   true,
		Handler: func(ctx Context) error {
			id, err := intArg(ctx.Args, 0)
			if err != nil {
				return err
			}
			item, err := stringArg(ctx.Args, 1)
			if err != nil {
				return err
			}
			amount, err := intArg(ctx.Args, 2)
			if err != nil {
				return err
			}
			return g.GrantItems(engine.TeamID(id), item, amount)
		},
	})

	r.MustRegister(Command{
		Name:        "fillitems",
		Usage:       "<team>",
		Description: "Fill a team's core storage to capacity.",
		AdminOnly:   true,
		Handler: func(ctx Context) error {
			id, err := intArg(ctx.Args, 0)
			if err != nil {
				return err
			}
			g.FillStorage(engine.TeamID(id))
			return nil
		},
	})
}

func stringArg(args []string, idx int) (string, error) {
	if idx >= len(args) || args[idx] == "" {
		return "", errors.WithMetadata(errors.CodeCommandBadArgument,
			"missing argument", map[string]string{"Argument": ""})
	}
	return args[idx], nil
}

func intArg(args []string, idx int) (int, error) {
	raw, err := stringArg(args, idx)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badArg(raw)
	}
	return n, nil
}

func badArg(value string) error {
	return errors.WithMetadata(errors.CodeCommandBadArgument,
		"bad argument", map[string]string{"Argument": value})
}

// playerArg resolves a player by exact name, falling back to a unique
// case-insensitive prefix.
func playerArg(eng engine.Engine, args []string, idx int) (engine.PlayerID, error) {
	raw, err := stringArg(args, idx)
	if err != nil {
		return "", err
	}

	var prefix []engine.PlayerID
	for _, p := range eng.Players() {
		name := eng.PlayerName(p)
		if name == raw {
			return p, nil
		}
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(raw)) {
			prefix = append(prefix, p)
		}
	}
	if len(prefix) == 1 {
		return prefix[0], nil
	}
	return "", badArg(raw)
}
