package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/stars.yaml
var defaultStarsYAML []byte

// DefaultStarsConfig returns the default Catch Falling Stars configuration.
func DefaultStarsConfig() StarsConfig {
	return StarsConfig{
		Field: FieldConfig{
			Width:  500,
			Height: 500,
		},
		Catcher: CatcherConfig{
			Width:  60,
			Height: 20,
			Y:      480,
			StartX: 220,
			Step:   20,
		},
		Stars: StarSpawnConfig{
			MinX:     20,
			MaxX:     480,
			MinY:     -150,
			MaxY:     -50,
			MinSpeed: 10,
			MaxSpeed: 20,
			Initial:  1,
		},
		Background: BackgroundConfig{
			GradientRows: 500,
			Dots:         100,
			DotMinSize:   1,
			DotMaxSize:   3,
		},
		Timing: TimingConfig{
			TickMS: 50,
		},
		HUD: HUDConfig{
			LabelSize:       14,
			LabelColor:      "#ffffff",
			LabelBackground: "#000000",
			GameOverSize:    30,
			GameOverColor:   "#ff0000",
			ButtonColor:     "#d9d9d9",
			ButtonTextColor: "#000000",
		},
	}
}

// TickInterval returns the configured tick period.
func (c StarsConfig) TickInterval() time.Duration {
	if c.Timing.TickMS <= 0 {
		return 50 * time.Millisecond
	}
	return time.Duration(c.Timing.TickMS) * time.Millisecond
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "stars":
		return defaultStarsYAML
	default:
		return nil
	}
}
