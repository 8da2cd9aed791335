// Package canvas implements a retained-mode drawing surface.
//
// Shapes are created once and then addressed through handles: they can be
// moved, re-positioned, re-labelled, hidden and deleted. A Raster turns the
// display list into an image with fogleman/gg, and Cells downsamples that
// image onto a terminal screen.
package canvas

import (
	"github.com/vovakirdan/star-catcher/internal/core"
)

// Handle identifies a shape on a Surface. The zero handle is never valid.
type Handle int

// Kind is the geometric type of a shape.
type Kind int

const (
	KindLine Kind = iota
	KindOval
	KindRectangle
	KindPolygon
	KindText
)

// String returns the name of the shape kind.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindOval:
		return "oval"
	case KindRectangle:
		return "rectangle"
	case KindPolygon:
		return "polygon"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Well-known tags understood by the renderers.
const (
	// TagBackground marks static shapes that are rasterized once and cached.
	// Background shapes must be created before any other shape.
	TagBackground = "background"

	// TagOverlay marks shapes drawn above everything else, regardless of
	// creation order.
	TagOverlay = "overlay"
)

// Point is a position on the surface.
type Point struct {
	X, Y float64
}

// Box is an axis-aligned bounding box given by two corners.
type Box struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

// Contains reports whether (x, y) lies inside the box, edges included.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Style controls how closed shapes and lines are painted.
type Style struct {
	Fill     core.RGB
	Outline  core.RGB
	Filled   bool
	Outlined bool
	Width    float64 // Outline width, 1 when zero
}

// Solid returns a style filled and outlined with the same color.
func Solid(c core.RGB) Style {
	return Style{Fill: c, Outline: c, Filled: true, Outlined: true}
}

// FillOnly returns a style filled with fill and outlined with outline.
func FillOnly(fill, outline core.RGB) Style {
	return Style{Fill: fill, Outline: outline, Filled: true, Outlined: true}
}

// Stroke returns an outline-only style.
func Stroke(c core.RGB) Style {
	return Style{Outline: c, Outlined: true}
}

func (s Style) lineWidth() float64 {
	if s.Width <= 0 {
		return 1
	}
	return s.Width
}

// Anchor selects which point of a text shape its coordinates refer to.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorNW
)

// factors returns the gg anchor factors for this anchor.
func (a Anchor) factors() (ax, ay float64) {
	if a == AnchorNW {
		return 0, 1
	}
	return 0.5, 0.5
}

// TextStyle controls how text shapes are painted.
type TextStyle struct {
	Color         core.RGB
	Size          float64 // Font size in points, 12 when zero
	Anchor        Anchor
	Background    core.RGB
	HasBackground bool
}

// Shape is a single display-list entry.
type Shape struct {
	Kind      Kind
	Coords    []float64
	Style     Style
	Text      string
	TextStyle TextStyle
	Tags      []string
	Hidden    bool
}

// HasTag reports whether the shape carries the given tag.
func (s *Shape) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Bounds returns the bounding box of the shape's coordinates.
// Text shapes report a zero-size box at their anchor.
func (s *Shape) Bounds() Box {
	if len(s.Coords) < 2 {
		return Box{}
	}
	b := Box{X0: s.Coords[0], Y0: s.Coords[1], X1: s.Coords[0], Y1: s.Coords[1]}
	for i := 2; i+1 < len(s.Coords); i += 2 {
		x, y := s.Coords[i], s.Coords[i+1]
		b.X0 = min(b.X0, x)
		b.X1 = max(b.X1, x)
		b.Y0 = min(b.Y0, y)
		b.Y1 = max(b.Y1, y)
	}
	return b
}

func (s *Shape) clone() Shape {
	c := *s
	c.Coords = append([]float64(nil), s.Coords...)
	c.Tags = append([]string(nil), s.Tags...)
	return c
}
