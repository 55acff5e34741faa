// Package registry maps shooter mode IDs to constructors. The modes package
// fills it at init time; the CLI, the menu and the SSH server look modes up
// here by the same IDs that appear in replay file names and the run ledger.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/replay"
)

// Game is a deterministic shooter run behind the terminal front ends.
// Implementations never read the clock or the keyboard: the caller samples
// one InputFrame per player per tick and owns pacing and drawing.
type Game interface {
	// ID is the mode name, e.g. "normal" or "boss".
	ID() string
	Title() string

	// Reset starts a fresh recording with the given seed and player count.
	Reset(cfg core.RuntimeConfig)
	// ResetWith starts a run from a replay's conditions.
	ResetWith(c replay.Conditions)

	// Step runs one tick. len(frames) must equal the run's player count.
	Step(frames []core.InputFrame) (core.StepResult, error)

	// Render draws the playfield into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
	// Conditions are what a replay of the current run records.
	Conditions() replay.Conditions
}

// GameInfo names a registered mode for menus and listings.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a Game ready for Reset.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds the mode id. Registering an id twice is a programming error
// and panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q registered twice", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns the registered modes ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	slices.SortFunc(result, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return result
}

// Create builds a new game for mode id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return f(), nil
}

// Exists reports whether mode id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
