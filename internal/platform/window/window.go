// Package window shows a game in a native window using Ebitengine.
package window

import (
	"errors"
	"fmt"
	"image"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/star-catcher/internal/core"
	"github.com/vovakirdan/star-catcher/internal/logging"
	"github.com/vovakirdan/star-catcher/internal/platform/frameloop"
	"github.com/vovakirdan/star-catcher/internal/registry"
)

// Game is a registry game that can render its full-resolution field.
type Game interface {
	registry.Game
	Image() image.Image
}

// Options configures the window.
type Options struct {
	Scale   int                 // Window size multiplier, 1 when zero
	OnRound frameloop.RoundFunc // Called for every finished round
	Logger  *log.Logger
}

type host struct {
	game   Game
	driver *frameloop.Driver
	repeat frameloop.Repeater
	logger *log.Logger
	width  int
	height int
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	h := &host{
		game:   game,
		driver: frameloop.New(game, opts.OnRound),
		repeat: frameloop.DefaultRepeater,
		logger: logger,
	}
	h.driver.Start(cfg)

	b := game.Image().Bounds()
	h.width, h.height = b.Dx(), b.Dy()
	scale := max(opts.Scale, 1)

	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(h.width*scale, h.height*scale)
	ebiten.SetTPS(frameloop.TPS(game.TickInterval()))
	logger.Debug("window opened", "width", h.width, "height", h.height, "tps", ebiten.TPS())

	err := ebiten.RunGame(h)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

func (h *host) held(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if h.repeat.Fire(inpututil.KeyPressDuration(k)) {
			return true
		}
	}
	return false
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func (h *host) poll() frameloop.Controls {
	c := frameloop.Controls{
		Left:    h.held(ebiten.KeyArrowLeft, ebiten.KeyA),
		Right:   h.held(ebiten.KeyArrowRight, ebiten.KeyD),
		Restart: justPressed(ebiten.KeyR, ebiten.KeyEnter),
		Quit:    justPressed(ebiten.KeyEscape, ebiten.KeyQ),
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		c.Click = true
		c.X, c.Y = float64(x), float64(y)
	}
	return c
}

// Update is called by Ebitengine once per tick.
func (h *host) Update() error {
	if h.driver.Update(h.poll()) {
		return ebiten.Termination
	}
	return nil
}

// Draw copies the rendered field to the window.
func (h *host) Draw(screen *ebiten.Image) {
	img := h.game.Image()
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) &&
		rgba.Stride == 4*h.width && rgba.Rect.Dx() == h.width && rgba.Rect.Dy() == h.height {
		screen.WritePixels(rgba.Pix)
		return
	}
	screen.DrawImage(ebiten.NewImageFromImage(img), nil)
}

// Layout keeps the logical screen at the field size and lets Ebitengine
// scale it to the window.
func (h *host) Layout(_, _ int) (int, int) {
	return h.width, h.height
}
