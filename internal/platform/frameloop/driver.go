// Package frameloop drives a game from a frame-polled host such as a
// native window. The host polls its devices once per frame and hands the
// result to Update, which applies it and advances the game by one tick.
package frameloop

import (
	"math"
	"time"

	"github.com/vovakirdan/star-catcher/internal/core"
	"github.com/vovakirdan/star-catcher/internal/registry"
)

// Controls is the device state sampled for one frame.
type Controls struct {
	Left    bool
	Right   bool
	Restart bool
	Quit    bool

	// Click is a primary button press at field position (X, Y).
	Click bool
	X, Y  float64
}

// RestartHitter is implemented by games with a clickable restart button.
type RestartHitter interface {
	HitRestart(x, y float64) bool
}

// RoundFunc is called once for every finished round.
type RoundFunc func(state core.GameState, ticks int)

// Driver applies controls and steps the game at the host frame rate.
type Driver struct {
	game    registry.Game
	onRound RoundFunc

	state   core.GameState
	running bool
	ticks   int
}

// New creates a driver for game. onRound may be nil.
func New(game registry.Game, onRound RoundFunc) *Driver {
	return &Driver{game: game, onRound: onRound}
}

// Start resets the game and starts ticking.
func (d *Driver) Start(cfg core.RuntimeConfig) {
	d.game.Reset(cfg)
	d.state = d.game.State()
	d.running = true
	d.ticks = 0
}

// Update applies one frame of controls and advances the game by one tick
// while the round runs. It reports whether the host should quit.
func (d *Driver) Update(c Controls) bool {
	if c.Quit {
		return true
	}

	if frame := d.frame(c); !frame.Empty() {
		wasOver := d.state.GameOver
		d.state = d.game.Input(frame)
		if wasOver && !d.state.GameOver {
			d.running = true
			d.ticks = 0
		}
	}

	if !d.running {
		return false
	}

	result := d.game.Step()
	d.state = result.State
	d.ticks++
	if !result.Reschedule {
		d.running = false
		if d.state.GameOver && d.onRound != nil {
			d.onRound(d.state, d.ticks)
		}
	}
	return false
}

func (d *Driver) frame(c Controls) core.InputFrame {
	frame := core.NewInputFrame()
	if c.Left {
		frame.Set(core.ActionLeft)
	}
	if c.Right {
		frame.Set(core.ActionRight)
	}
	if c.Restart {
		frame.Set(core.ActionRestart)
	}
	if c.Click {
		if h, ok := d.game.(RestartHitter); ok && h.HitRestart(c.X, c.Y) {
			frame.Set(core.ActionRestart)
		}
	}
	return frame
}

// State returns the state after the last frame.
func (d *Driver) State() core.GameState {
	return d.state
}

// Running reports whether the game is being stepped.
func (d *Driver) Running() bool {
	return d.running
}

// Ticks returns the ticks played in the current round.
func (d *Driver) Ticks() int {
	return d.ticks
}

// TPS converts a tick interval into frames per second, at least 1.
func TPS(interval time.Duration) int {
	if interval <= 0 {
		return 60
	}
	return max(1, int(math.Round(float64(time.Second)/float64(interval))))
}

// Repeater turns the number of frames a key has been held into discrete
// presses: one at the first frame, then one every Interval frames after
// Delay frames.
type Repeater struct {
	Delay    int
	Interval int
}

// DefaultRepeater repeats after 300ms, then every frame, at 20 TPS.
var DefaultRepeater = Repeater{Delay: 6, Interval: 1}

// Fire reports whether a key held for held frames produces a press now.
func (r Repeater) Fire(held int) bool {
	switch {
	case held <= 0:
		return false
	case held == 1:
		return true
	case r.Interval <= 0 || held < r.Delay:
		return false
	default:
		return (held-r.Delay)%r.Interval == 0
	}
}
