// Package command implements the in-game chat command surface: a single
// registry with per-command admin gating, plus the player and admin
// command sets.
package command

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/kennarddh-mindustry/plague/internal/engine"
	"github.com/kennarddh-mindustry/plague/internal/errors"
)

// Context carries one invocation.
type Context struct {
	Player engine.PlayerID
	Args   []string
}

// HandlerFunc executes one command. Returned errors are localized and
// sent back to the invoking player.
type HandlerFunc func(Context) error

// Command is one registered chat command.
type Command struct {
	Name        string
	Usage       string
	Description string
	AdminOnly   bool
	Handler     HandlerFunc
}

// Registry dispatches chat commands. Admin gating happens here, in one
// place, so no handler needs its own permission check.
type Registry struct {
	eng    engine.Engine
	log    *zap.Logger
	locale string

	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry builds an empty command registry.
func NewRegistry(eng engine.Engine, log *zap.Logger) *Registry {
	return &Registry{
		eng:      eng,
		log:      log,
		locale:   "en-US",
		commands: make(map[string]Command),
	}
}

// Register adds a command. Registering a duplicate name is a wiring
// defect and fails loudly.
func (r *Registry) Register(c Command) error {
	if c.Name == "" || c.Handler == nil {
		return fmt.Errorf("command requires a name and a handler")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[c.Name]; exists {
		return fmt.Errorf("command %q registered twice", c.Name)
	}
	r.commands[c.Name] = c
	return nil
}

// MustRegister registers or panics. Used at wiring time.
func (r *Registry) MustRegister(c Command) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// Execute resolves and runs a command for a player. Unknown names,
// permission failures and handler errors all come back to the player as
// localized messages.
func (r *Registry) Execute(p engine.PlayerID, name string, args []string) {
	r.mu.RLock()
	c, ok := r.commands[name]
	r.mu.RUnlock()

	var err error
	switch {
	case !ok:
		err = errors.WithMetadata(errors.CodeCommandUnknown, "unknown command",
			map[string]string{"Command": name})
	case c.AdminOnly && !r.eng.IsAdmin(p):
		err = errors.WithMetadata(errors.CodeCommandNotPermitted, "admin command",
			map[string]string{"Command": name})
	default:
		err = c.Handler(Context{Player: p, Args: args})
	}

	if err != nil {
		r.log.Debug("command rejected",
			zap.String("player", string(p)),
			zap.String("command", name),
			zap.Error(err))
		r.eng.Message(p, fmt.Sprintf("[scarlet]%s", errors.UserMessage(err, r.locale)))
	}
}

// Commands returns every registered command visible to the player,
// sorted by name.
func (r *Registry) Commands(p engine.PlayerID) []Command {
	admin := r.eng.IsAdmin(p)

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		if c.AdminOnly && !admin {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
