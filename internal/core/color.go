package core

import "fmt"

// RGB is a 24-bit color used by screen cells and canvas shapes.
type RGB struct {
	R, G, B uint8
}

// Common colors used by the HUD and overlays.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
	Red   = RGB{255, 0, 0}
	Gray  = RGB{128, 128, 128}
)

// GrayLevel returns a gray color with all channels set to level.
func GrayLevel(level uint8) RGB {
	return RGB{R: level, G: level, B: level}
}

// Hex returns the color in #rrggbb form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
