// Package registry maps game mode IDs to factories. Modes register from
// init(), so the CLI, the menu and the SSH server can build them by name.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// Game is a pure simulation driven by the platform. It never touches the
// terminal: the platform feeds it input frames at a fixed rate and asks it
// to draw into a screen buffer.
type Game interface {
	// ID is the stable key used on the command line and in the score store.
	ID() string

	// Title is shown in menus and on the scoreboard.
	Title() string

	// Reset starts a fresh run sized to cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Resizable is implemented by games that can adapt to a new terminal size
// without restarting. Other games are Reset on resize.
type Resizable interface {
	Resize(w, h int)
}

// Observable is implemented by games that expose a value snapshot of their
// state for spectators. The returned value must not share memory with the
// running game.
type Observable interface {
	Observe() any
}

// Tunable is implemented by games that accept a difficulty preset per
// instance, so concurrent sessions do not share one setting.
type Tunable interface {
	SetDifficulty(preset string)
}

// ErrUnknownGame is wrapped by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh game instance.
type Factory func() Game

type entry struct {
	title   string
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a mode. The title is read once from a throwaway instance.
// Registering an ID twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{title: f().Title(), factory: f}
}

// List returns every registered mode ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create builds a new instance of the mode id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
