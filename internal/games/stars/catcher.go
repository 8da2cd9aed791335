package stars

import (
	"github.com/vovakirdan/star-catcher/internal/canvas"
	"github.com/vovakirdan/star-catcher/internal/config"
	"github.com/vovakirdan/star-catcher/internal/core"
)

// Catcher is the player-controlled rectangle at the bottom of the field.
type Catcher struct {
	surface *canvas.Surface
	shape   canvas.Handle
	cfg     config.CatcherConfig
	x       int
	maxX    int
	state   *Tracker
}

// NewCatcher places a catcher at its start position. Moves are refused
// while state reports game over.
func NewCatcher(s *canvas.Surface, cfg config.CatcherConfig, fieldWidth int, c core.RGB, state *Tracker) *Catcher {
	cat := &Catcher{
		surface: s,
		cfg:     cfg,
		x:       cfg.StartX,
		maxX:    cfg.MaxX(fieldWidth),
		state:   state,
	}
	r := cat.Rect()
	cat.shape = s.CreateRectangle(
		float64(r.X), float64(r.Y), float64(r.Right()), float64(r.Bottom()),
		canvas.Solid(c), TagCatcher,
	)
	return cat
}

// X returns the catcher's left edge.
func (c *Catcher) X() int { return c.x }

// Shape returns the catcher's rectangle handle.
func (c *Catcher) Shape() canvas.Handle { return c.shape }

// Rect returns the catcher's extent on the field.
func (c *Catcher) Rect() core.Rect {
	return core.NewRect(c.x, c.cfg.Y, c.cfg.Width, c.cfg.Height)
}

// MoveLeft shifts the catcher one step left. It reports whether it moved.
func (c *Catcher) MoveLeft() bool {
	return c.moveTo(c.x - c.cfg.Step)
}

// MoveRight shifts the catcher one step right. It reports whether it moved.
func (c *Catcher) MoveRight() bool {
	return c.moveTo(c.x + c.cfg.Step)
}

// moveTo refuses positions outside [0, maxX] instead of truncating them.
func (c *Catcher) moveTo(x int) bool {
	if c.state != nil && c.state.GameOver() {
		return false
	}
	if x < 0 || x > c.maxX {
		return false
	}
	c.x = x
	r := c.Rect()
	_ = c.surface.SetCoords(c.shape,
		float64(r.X), float64(r.Y), float64(r.Right()), float64(r.Bottom()))
	return true
}
