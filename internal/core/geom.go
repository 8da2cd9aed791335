// Package core provides fundamental types and utilities shared by the game
// and its front ends. It has no external dependencies (especially no
// Bubble Tea) to keep game logic pure and testable.
package core

// Rect is an axis-aligned box in field units.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// OverlapsSpan reports whether the open horizontal span (left, right)
// overlaps this rectangle's horizontal extent. Touching edges do not count.
func (r Rect) OverlapsSpan(left, right float64) bool {
	return right > float64(r.X) && left < float64(r.Right())
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
