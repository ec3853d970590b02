package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"EmberVale/internal/game"
)

// CommandGroup buckets commands for help listings and access control.
type CommandGroup int

const (
	GroupGeneral CommandGroup = iota
	GroupAdmin
)

// Definition describes a single command's metadata.
type Definition struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	Group       CommandGroup
}

// Reply is what a command sends back to the player who issued it, plus any
// notices for other players.
type Reply struct {
	Text    string
	Notices []game.Notice
}

// Handler executes a command. Classified errors become player-facing text;
// anything else is an internal fault the transport reports generically.
type Handler func(*Context) (Reply, error)

// Command couples metadata with the executable handler.
type Command struct {
	Definition
	Handler Handler
}

// Context provides the runtime data available to a command handler.
type Context struct {
	Engine  *game.Engine
	Player  string
	IsAdmin bool
	Raw     string
	Arg     string
	Input   string
	Command *Command
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Command)
	ordered    []*Command
)

// Define registers a new command using the provided definition and handler.
// It panics when metadata is incomplete or duplicates an existing command.
func Define(def Definition, handler Handler) *Command {
	if handler == nil {
		panic("commands: handler must not be nil")
	}
	if strings.TrimSpace(def.Name) == "" {
		panic("commands: command must have a name")
	}

	cmd := &Command{Definition: def, Handler: handler}

	registryMu.Lock()
	defer registryMu.Unlock()

	registerName := func(name string) {
		key := strings.ToLower(name)
		if _, exists := registry[key]; exists {
			panic(fmt.Sprintf("commands: duplicate registration for %q", name))
		}
		registry[key] = cmd
	}

	registerName(def.Name)
	for _, alias := range def.Aliases {
		if strings.TrimSpace(alias) == "" {
			continue
		}
		registerName(alias)
	}

	ordered = append(ordered, cmd)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})

	return cmd
}

// All returns the registered commands sorted by primary name.
func All() []*Command {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]*Command, len(ordered))
	copy(out, ordered)
	return out
}

// Find looks up a command by name or alias.
func Find(name string) (*Command, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	cmd, ok := registry[strings.ToLower(name)]
	return cmd, ok
}

// Dispatch parses the input line, looks up the command, and executes it.
// The leading slash is optional. Classified engine errors come back as
// reply text; only internal faults surface as errors.
func Dispatch(engine *game.Engine, player, line string) (Reply, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "/"))
	parts := strings.Fields(trimmed)
	if len(parts) == 0 {
		return Reply{Text: "Say something, or type /help."}, nil
	}
	name := strings.ToLower(parts[0])

	cmd, ok := Find(name)
	if !ok {
		return Reply{Text: "Unknown command '/" + name + "'. Type /help."}, nil
	}

	isAdmin := engine.IsAdmin(player)
	if cmd.Group == GroupAdmin && !isAdmin {
		return Reply{Text: "Unknown command '/" + name + "'. Type /help."}, nil
	}

	ctx := &Context{
		Engine:  engine,
		Player:  player,
		IsAdmin: isAdmin,
		Raw:     line,
		Arg:     strings.TrimSpace(strings.TrimPrefix(trimmed, parts[0])),
		Input:   name,
		Command: cmd,
	}
	reply, err := cmd.Handler(ctx)
	if err != nil {
		var classified *game.Error
		if errors.As(err, &classified) {
			return Reply{Text: classified.Message}, nil
		}
		return Reply{}, err
	}
	return reply, nil
}
