package stars

import (
	"math/rand"

	"github.com/vovakirdan/star-catcher/internal/canvas"
	"github.com/vovakirdan/star-catcher/internal/core"
)

// StarRadius is the half-extent of a star polygon's bounding box.
const StarRadius = 15

// starOffsets outline a five-pointed star, clockwise from the top point.
var starOffsets = [10]canvas.Point{
	{X: 0, Y: -15},  // top
	{X: 5, Y: -5},   // upper right
	{X: 15, Y: -5},  // right
	{X: 7, Y: 5},    // lower right
	{X: 10, Y: 15},  // right foot
	{X: 0, Y: 10},   // bottom
	{X: -10, Y: 15}, // left foot
	{X: -7, Y: 5},   // lower left
	{X: -15, Y: -5}, // left
	{X: -5, Y: -5},  // upper left
}

// StarPolygon returns the ten vertices of a star centered at (cx, cy).
func StarPolygon(cx, cy float64) []canvas.Point {
	pts := make([]canvas.Point, len(starOffsets))
	for i, o := range starOffsets {
		pts[i] = canvas.Point{X: cx + o.X, Y: cy + o.Y}
	}
	return pts
}

// RandomBrightColor returns a color whose channels are independently
// uniform over 0-255. No minimum brightness is enforced.
func RandomBrightColor(rng *rand.Rand) core.RGB {
	return core.RGB{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
	}
}

// randInt returns a uniform integer in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
