// Package stars implements Catch Falling Stars: a catcher at the bottom of
// a 500x500 field collects stars falling from above. Missing one ends the
// round.
package stars

import (
	"fmt"
	"image"
	"io"
	"math/rand"
	"time"

	"github.com/vovakirdan/star-catcher/internal/canvas"
	"github.com/vovakirdan/star-catcher/internal/config"
	"github.com/vovakirdan/star-catcher/internal/core"
	"github.com/vovakirdan/star-catcher/internal/registry"
)

// Shape tags used on the surface.
const (
	TagStar     = "star"
	TagCatcher  = "catcher"
	TagHUD      = "hud"
	TagGameOver = "gameover"
	TagRestart  = "restart"
)

// ConfigSource supplies the configuration applied at every (re)start.
type ConfigSource interface {
	Current() config.StarsConfig
}

type staticSource config.StarsConfig

func (s staticSource) Current() config.StarsConfig { return config.StarsConfig(s) }

// Package-level configuration, set by the CLI before games are created.
var (
	configPath   string
	configSource ConfigSource
)

// SetConfigPath sets the config file loaded by games created afterwards.
func SetConfigPath(path string) {
	configPath = path
}

// SetConfigSource makes games created afterwards read their configuration
// from src on every restart. It takes precedence over SetConfigPath.
func SetConfigSource(src ConfigSource) {
	configSource = src
}

// Game implements the Catch Falling Stars game.
type Game struct {
	source  ConfigSource
	cfg     config.StarsConfig
	palette config.Palette

	rng     *rand.Rand
	surface *canvas.Surface
	raster  *canvas.Raster
	store   *Store
	catcher *Catcher
	score   Tracker

	scoreLabel canvas.Handle
	highLabel  canvas.Handle

	tick  uint64
	round int

	// viewport is the cell area of the last Render, used to map clicks.
	viewport canvas.Viewport
}

// New creates a game using the package-level configuration.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with a fixed configuration.
func NewWithConfig(cfg config.StarsConfig) *Game {
	return &Game{source: staticSource(cfg)}
}

func init() {
	registry.Register("stars", "Catch Falling Stars", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "stars" }

// Title returns the display name.
func (g *Game) Title() string { return "Catch Falling Stars" }

// Reset seeds the game and sets up the first round.
// The high score of an earlier round is kept.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if g.source == nil {
		g.source = defaultSource()
	}
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.round = 0
	g.setup()
}

func defaultSource() ConfigSource {
	if configSource != nil {
		return configSource
	}
	cfg, err := config.LoadStars(configPath)
	if err != nil {
		cfg = config.DefaultStarsConfig()
	}
	return staticSource(cfg)
}

// Restart leaves GameOver and sets up a new round with the same RNG.
func (g *Game) Restart() {
	if g.rng == nil {
		g.Reset(core.DefaultConfig())
		return
	}
	g.setup()
}

// setup clears the surface, redraws the background and starts a round.
func (g *Game) setup() {
	cfg := g.source.Current()
	if err := cfg.Validate(); err != nil {
		cfg = config.DefaultStarsConfig()
	}
	g.cfg = cfg
	g.palette = cfg.HUD.Palette()

	if g.surface == nil || g.surface.Width() != cfg.Field.Width || g.surface.Height() != cfg.Field.Height {
		g.surface = canvas.NewSurface(cfg.Field.Width, cfg.Field.Height)
		g.raster = canvas.NewRaster(g.surface)
	} else {
		g.surface.Clear()
	}

	DrawGradient(g.surface, cfg.Background.GradientRows)
	DrawStarField(g.surface, g.rng, cfg.Background)

	g.score.Reset()
	g.createLabels()
	g.catcher = NewCatcher(g.surface, cfg.Catcher, cfg.Field.Width, RandomBrightColor(g.rng), &g.score)

	g.store = NewStore(g.surface, g.rng, cfg.Stars)
	for i := 0; i < cfg.Stars.Initial; i++ {
		g.store.Spawn()
	}

	g.tick = 0
	g.round++
}

func (g *Game) labelStyle() canvas.TextStyle {
	return canvas.TextStyle{
		Color:         g.palette.Label,
		Size:          g.cfg.HUD.LabelSize,
		Anchor:        canvas.AnchorNW,
		Background:    g.palette.LabelBackground,
		HasBackground: true,
	}
}

func (g *Game) createLabels() {
	st := g.labelStyle()
	g.scoreLabel = g.surface.CreateText(10, 10, scoreText(g.score.Score()), st, canvas.TagOverlay, TagHUD)
	g.highLabel = g.surface.CreateText(float64(g.cfg.Field.Width-150), 10,
		highScoreText(g.score.HighScore()), st, canvas.TagOverlay, TagHUD)
}

func (g *Game) updateLabels() {
	_ = g.surface.SetText(g.scoreLabel, scoreText(g.score.Score()))
	if g.score.SyncHigh() {
		_ = g.surface.SetText(g.highLabel, highScoreText(g.score.HighScore()))
	}
}

func scoreText(n int) string     { return fmt.Sprintf("Score: %d", n) }
func highScoreText(n int) string { return fmt.Sprintf("High Score: %d", n) }

// showGameOver draws the message and the restart button.
func (g *Game) showGameOver() {
	cx := float64(g.cfg.Field.Width) / 2
	cy := float64(g.cfg.Field.Height) / 2

	g.surface.CreateText(cx, cy, "GAME OVER", canvas.TextStyle{
		Color: g.palette.GameOver,
		Size:  g.cfg.HUD.GameOverSize,
	}, canvas.TagOverlay, TagGameOver)

	x0, y0 := cx-50, cy+50
	g.surface.CreateRectangle(x0, y0, x0+100, y0+35,
		canvas.FillOnly(g.palette.Button, g.palette.ButtonText),
		canvas.TagOverlay, TagRestart)
	g.surface.CreateText(cx, y0+17.5, "Restart", canvas.TextStyle{
		Color: g.palette.ButtonText,
		Size:  g.cfg.HUD.LabelSize,
	}, canvas.TagOverlay, TagRestart)
}

// Input applies movement immediately. While the round is over it only
// reacts to restart: the R or Enter key, or a click on the restart button.
func (g *Game) Input(in core.InputFrame) core.GameState {
	if g.surface == nil {
		return g.State()
	}

	if in.Has(core.ActionLeft) {
		g.catcher.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		g.catcher.MoveRight()
	}

	if g.score.GameOver() {
		switch {
		case in.Has(core.ActionRestart), in.Has(core.ActionConfirm):
			g.Restart()
		case in.Has(core.ActionClick) && g.hitCell(in.Pointer):
			g.Restart()
		}
	}
	return g.State()
}

func (g *Game) hitCell(p core.Point) bool {
	fx, fy, ok := g.viewport.ToField(p.X, p.Y)
	return ok && g.HitRestart(fx, fy)
}

// HitRestart reports whether the field position (x, y) is on the restart
// button. The button only exists while the round is over.
func (g *Game) HitRestart(x, y float64) bool {
	if g.surface == nil || !g.score.GameOver() {
		return false
	}
	return g.surface.HitTag(x, y, TagRestart)
}

// Step advances every star by one tick.
func (g *Game) Step() core.StepResult {
	if g.surface == nil {
		return core.StepResult{}
	}
	if !g.score.GameOver() {
		g.tick++
	}
	return g.advance()
}

// TickInterval returns the configured tick period.
func (g *Game) TickInterval() time.Duration {
	if g.cfg.Timing.TickMS <= 0 {
		return core.DefaultTickInterval
	}
	return g.cfg.TickInterval()
}

// Render draws the field into dst, scaled to fit and centered.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.surface == nil {
		return
	}

	vp := canvas.FitViewport(g.surface.Width(), g.surface.Height(), dst.Width(), dst.Height())
	g.viewport = vp

	canvas.Cells(g.raster.Render(canvas.RenderOptions{SkipText: true}), dst, vp)
	canvas.OverlayText(g.surface, dst, vp)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.score.State()
}

// Config returns the configuration of the current round.
func (g *Game) Config() config.StarsConfig {
	return g.cfg
}

// Surface returns the drawing surface. It is nil before Reset.
func (g *Game) Surface() *canvas.Surface {
	return g.surface
}

// Image renders the full-resolution field.
func (g *Game) Image() image.Image {
	if g.raster == nil {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return g.raster.Render(canvas.RenderOptions{})
}

// WritePNG encodes the full-resolution field as PNG.
func (g *Game) WritePNG(w io.Writer) error {
	if g.raster == nil {
		return fmt.Errorf("stars: game not started")
	}
	return g.raster.WritePNG(w)
}

// SavePNG writes the full-resolution field to a PNG file.
func (g *Game) SavePNG(path string) error {
	if g.raster == nil {
		return fmt.Errorf("stars: game not started")
	}
	return g.raster.SavePNG(path)
}
