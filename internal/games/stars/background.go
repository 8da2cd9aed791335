package stars

import (
	"math/rand"

	"github.com/vovakirdan/star-catcher/internal/canvas"
	"github.com/vovakirdan/star-catcher/internal/config"
	"github.com/vovakirdan/star-catcher/internal/core"
)

// DrawGradient draws one full-width line per row, from black at the top
// towards white at the bottom.
func DrawGradient(s *canvas.Surface, rows int) {
	w := float64(s.Width())
	for i := 0; i < rows; i++ {
		level := uint8(i * 255 / rows)
		y := float64(i)
		s.CreateLine(0, y, w, y, core.GrayLevel(level), canvas.TagBackground)
	}
}

// DrawStarField scatters small randomly colored dots over the surface.
func DrawStarField(s *canvas.Surface, rng *rand.Rand, cfg config.BackgroundConfig) {
	for i := 0; i < cfg.Dots; i++ {
		x := float64(randInt(rng, 0, s.Width()))
		y := float64(randInt(rng, 0, s.Height()))
		size := float64(randInt(rng, cfg.DotMinSize, cfg.DotMaxSize))
		c := RandomBrightColor(rng)
		s.CreateOval(x, y, x+size, y+size, canvas.Solid(c), canvas.TagBackground)
	}
}
