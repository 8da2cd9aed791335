// Package config provides YAML-based game configuration loading for the
// star catcher.
package config

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/star-catcher/internal/core"
)

// StarsConfig contains all configuration for the Catch Falling Stars game.
type StarsConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Catcher    CatcherConfig    `yaml:"catcher"`
	Stars      StarSpawnConfig  `yaml:"stars"`
	Background BackgroundConfig `yaml:"background"`
	Timing     TimingConfig     `yaml:"timing"`
	Rules      RulesConfig      `yaml:"rules"`
	HUD        HUDConfig        `yaml:"hud"`
}

// FieldConfig defines the playing field size in pixels.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CatcherConfig defines the player-controlled catcher.
type CatcherConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Y      int `yaml:"y"`       // Top edge, also the catch line
	StartX int `yaml:"start_x"` // Left edge after every (re)start
	Step   int `yaml:"step"`    // Pixels per move command
}

// MaxX returns the rightmost left-edge position that keeps the catcher
// inside the field.
func (c CatcherConfig) MaxX(fieldWidth int) int {
	return fieldWidth - c.Width
}

// StarSpawnConfig defines where and how fast falling stars appear.
type StarSpawnConfig struct {
	MinX     int `yaml:"min_x"`
	MaxX     int `yaml:"max_x"`
	MinY     int `yaml:"min_y"`
	MaxY     int `yaml:"max_y"`
	MinSpeed int `yaml:"min_speed"`
	MaxSpeed int `yaml:"max_speed"`
	Initial  int `yaml:"initial"` // Stars spawned on every (re)start
}

// BackgroundConfig defines the gradient and the decorative star field.
type BackgroundConfig struct {
	GradientRows int `yaml:"gradient_rows"`
	Dots         int `yaml:"dots"`
	DotMinSize   int `yaml:"dot_min_size"`
	DotMaxSize   int `yaml:"dot_max_size"`
}

// TimingConfig defines the fixed tick period.
type TimingConfig struct {
	TickMS int `yaml:"tick_ms"`
}

// RulesConfig holds switches for rule variants.
type RulesConfig struct {
	// HaltOnMiss stops scanning the remaining stars of a tick once a miss
	// ended the round. When false, later stars in the same tick can still
	// be caught.
	HaltOnMiss bool `yaml:"halt_on_miss"`
}

// HUDConfig defines label and overlay styling. Colors are #rrggbb strings.
type HUDConfig struct {
	LabelSize       float64 `yaml:"label_size"`
	LabelColor      string  `yaml:"label_color"`
	LabelBackground string  `yaml:"label_background"`
	GameOverSize    float64 `yaml:"game_over_size"`
	GameOverColor   string  `yaml:"game_over_color"`
	ButtonColor     string  `yaml:"button_color"`
	ButtonTextColor string  `yaml:"button_text_color"`
}

// Palette is the parsed form of HUDConfig colors.
type Palette struct {
	Label           core.RGB
	LabelBackground core.RGB
	GameOver        core.RGB
	Button          core.RGB
	ButtonText      core.RGB
}

// Palette parses the HUD colors. Invalid entries fall back to the defaults.
func (h HUDConfig) Palette() Palette {
	d := DefaultStarsConfig().HUD
	return Palette{
		Label:           parseColor(h.LabelColor, d.LabelColor),
		LabelBackground: parseColor(h.LabelBackground, d.LabelBackground),
		GameOver:        parseColor(h.GameOverColor, d.GameOverColor),
		Button:          parseColor(h.ButtonColor, d.ButtonColor),
		ButtonText:      parseColor(h.ButtonTextColor, d.ButtonTextColor),
	}
}

// ParseColor converts a #rrggbb string into a core color.
func ParseColor(s string) (core.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return core.RGB{}, fmt.Errorf("config: color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return core.RGB{R: r, G: g, B: b}, nil
}

func parseColor(s, fallback string) core.RGB {
	if c, err := ParseColor(s); err == nil {
		return c
	}
	c, _ := ParseColor(fallback)
	return c
}

// Validate reports every inconsistent value in the configuration.
func (c StarsConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("config: "+format, args...))
		}
	}

	check(c.Field.Width > 0 && c.Field.Height > 0,
		"field size must be positive, got %dx%d", c.Field.Width, c.Field.Height)

	check(c.Catcher.Width > 0 && c.Catcher.Height > 0,
		"catcher size must be positive, got %dx%d", c.Catcher.Width, c.Catcher.Height)
	check(c.Catcher.Width <= c.Field.Width,
		"catcher width %d exceeds field width %d", c.Catcher.Width, c.Field.Width)
	check(c.Catcher.Step > 0, "catcher step must be positive, got %d", c.Catcher.Step)
	check(c.Catcher.StartX >= 0 && c.Catcher.StartX <= c.Catcher.MaxX(c.Field.Width),
		"catcher start_x %d outside [0,%d]", c.Catcher.StartX, c.Catcher.MaxX(c.Field.Width))
	check(c.Catcher.Y >= 0 && c.Catcher.Y+c.Catcher.Height <= c.Field.Height,
		"catcher y %d does not fit the field", c.Catcher.Y)

	check(c.Stars.MinX <= c.Stars.MaxX, "stars min_x %d > max_x %d", c.Stars.MinX, c.Stars.MaxX)
	check(c.Stars.MinY <= c.Stars.MaxY, "stars min_y %d > max_y %d", c.Stars.MinY, c.Stars.MaxY)
	check(c.Stars.MinSpeed > 0, "stars min_speed must be positive, got %d", c.Stars.MinSpeed)
	check(c.Stars.MinSpeed <= c.Stars.MaxSpeed,
		"stars min_speed %d > max_speed %d", c.Stars.MinSpeed, c.Stars.MaxSpeed)
	check(c.Stars.Initial > 0, "stars initial must be positive, got %d", c.Stars.Initial)

	check(c.Background.GradientRows >= 0, "background gradient_rows must not be negative")
	check(c.Background.Dots >= 0, "background dots must not be negative")
	check(c.Background.DotMinSize > 0 && c.Background.DotMinSize <= c.Background.DotMaxSize,
		"background dot sizes [%d,%d] invalid", c.Background.DotMinSize, c.Background.DotMaxSize)

	check(c.Timing.TickMS > 0, "timing tick_ms must be positive, got %d", c.Timing.TickMS)

	return errors.Join(errs...)
}
