// Package registry maps game IDs to factories. Game packages register
// themselves from init, so front ends only need a blank import.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/vovakirdan/star-catcher/internal/core"
)

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the contract between a game's logic and the front ends that
// drive it. Implementations know nothing about terminals, windows or
// timers: the front end owns the clock and calls Step every TickInterval.
type Game interface {
	// ID is the stable identifier used on the command line and in the
	// round history, e.g. "stars".
	ID() string

	Title() string

	// Reset seeds the game and sets up the first round.
	Reset(cfg core.RuntimeConfig)

	// Input applies discrete commands right away, between ticks.
	Input(in core.InputFrame) core.GameState

	// Step runs one tick. A false Reschedule means no further tick is
	// wanted until the next restart.
	Step() core.StepResult

	TickInterval() time.Duration

	// Render draws into dst, which is cleared by the game itself.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory returns a fresh, not yet Reset game.
type Factory func() Game

type entry struct {
	title   string
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register makes a game available under id. It panics on a duplicate id.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{title: title, factory: f}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Create builds a new instance of the game registered under id.
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

// Title returns the display name registered for id, or id itself.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()
	if e, ok := entries[id]; ok {
		return e.title
	}
	return id
}
