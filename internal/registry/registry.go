// Package registry keeps the game factories known to the front end.
// Games register themselves in init(), so the TUI and CLI can build them
// by ID without importing the game packages directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/noderunner/internal/core"
)

// Game is what the terminal front end drives once per tick.
// Implementations hold no terminal state.
type Game interface {
	// ID is the stable identifier used by the CLI and the scoreboard.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh session for the given screen and tick.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions pressed or held during it.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a cleared screen buffer.
	Render(dst *core.Screen)

	State() core.GameState
}

// Failer is implemented by games that record non-fatal errors, such as a
// save slot that could not be written.
type Failer interface {
	Err() error
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns the registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether a game ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// LastErr returns the error recorded by g, if it records any.
func LastErr(g Game) error {
	if f, ok := g.(Failer); ok {
		return f.Err()
	}
	return nil
}
