package canvas

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/star-catcher/internal/core"
)

// ErrUnknownShape is returned when a handle does not name a live shape.
var ErrUnknownShape = errors.New("canvas: unknown shape")

// Surface is an ordered display list of shapes.
// Shapes are painted in creation order, overlays last.
// A Surface is not safe for concurrent use.
type Surface struct {
	width  int
	height int

	shapes map[Handle]*Shape
	order  []Handle
	next   Handle

	// revision is a monotonic change counter; tagRev holds the revision
	// of the latest change to a shape carrying each tag.
	revision uint64
	tagRev   map[string]uint64
}

// NewSurface creates an empty surface of the given size in pixels.
func NewSurface(width, height int) *Surface {
	return &Surface{
		width:  core.Max(width, 1),
		height: core.Max(height, 1),
		shapes: make(map[Handle]*Shape),
		tagRev: make(map[string]uint64),
	}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Len returns the number of live shapes.
func (s *Surface) Len() int { return len(s.order) }

// Revision returns a counter that changes whenever a shape carrying tag
// is created, modified or deleted. An empty tag tracks every change.
func (s *Surface) Revision(tag string) uint64 {
	if tag == "" {
		return s.revision
	}
	return s.tagRev[tag]
}

func (s *Surface) touch(sh *Shape) {
	s.revision++
	for _, t := range sh.Tags {
		s.tagRev[t] = s.revision
	}
}

func (s *Surface) add(sh *Shape) Handle {
	s.next++
	h := s.next
	s.shapes[h] = sh
	s.order = append(s.order, h)
	s.touch(sh)
	return h
}

func (s *Surface) lookup(h Handle) (*Shape, error) {
	sh, ok := s.shapes[h]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownShape, h)
	}
	return sh, nil
}

// CreateLine adds a straight line segment.
func (s *Surface) CreateLine(x0, y0, x1, y1 float64, c core.RGB, tags ...string) Handle {
	return s.add(&Shape{
		Kind:   KindLine,
		Coords: []float64{x0, y0, x1, y1},
		Style:  Stroke(c),
		Tags:   tags,
	})
}

// CreateOval adds an ellipse inscribed in the box (x0,y0)-(x1,y1).
func (s *Surface) CreateOval(x0, y0, x1, y1 float64, st Style, tags ...string) Handle {
	return s.add(&Shape{
		Kind:   KindOval,
		Coords: []float64{x0, y0, x1, y1},
		Style:  st,
		Tags:   tags,
	})
}

// CreateRectangle adds the rectangle with corners (x0,y0) and (x1,y1).
func (s *Surface) CreateRectangle(x0, y0, x1, y1 float64, st Style, tags ...string) Handle {
	return s.add(&Shape{
		Kind:   KindRectangle,
		Coords: []float64{x0, y0, x1, y1},
		Style:  st,
		Tags:   tags,
	})
}

// CreatePolygon adds a closed polygon through the given vertices.
func (s *Surface) CreatePolygon(points []Point, st Style, tags ...string) Handle {
	coords := make([]float64, 0, len(points)*2)
	for _, p := range points {
		coords = append(coords, p.X, p.Y)
	}
	return s.add(&Shape{
		Kind:   KindPolygon,
		Coords: coords,
		Style:  st,
		Tags:   tags,
	})
}

// CreateText adds a text label anchored at (x, y).
func (s *Surface) CreateText(x, y float64, text string, ts TextStyle, tags ...string) Handle {
	return s.add(&Shape{
		Kind:      KindText,
		Coords:    []float64{x, y},
		Text:      text,
		TextStyle: ts,
		Tags:      tags,
	})
}

// Move translates a shape by (dx, dy).
func (s *Surface) Move(h Handle, dx, dy float64) error {
	sh, err := s.lookup(h)
	if err != nil {
		return err
	}
	for i := 0; i+1 < len(sh.Coords); i += 2 {
		sh.Coords[i] += dx
		sh.Coords[i+1] += dy
	}
	s.touch(sh)
	return nil
}

// Coords returns a copy of the shape's coordinate list.
func (s *Surface) Coords(h Handle) ([]float64, error) {
	sh, err := s.lookup(h)
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), sh.Coords...), nil
}

// SetCoords replaces the shape's coordinates. The number of values must
// match the shape's current coordinate list.
func (s *Surface) SetCoords(h Handle, coords ...float64) error {
	sh, err := s.lookup(h)
	if err != nil {
		return err
	}
	if len(coords) != len(sh.Coords) {
		return fmt.Errorf("canvas: %s %d takes %d coordinates, got %d",
			sh.Kind, h, len(sh.Coords), len(coords))
	}
	copy(sh.Coords, coords)
	s.touch(sh)
	return nil
}

// Bounds returns the bounding box of a shape.
func (s *Surface) Bounds(h Handle) (Box, error) {
	sh, err := s.lookup(h)
	if err != nil {
		return Box{}, err
	}
	return sh.Bounds(), nil
}

// SetText replaces the content of a text shape.
func (s *Surface) SetText(h Handle, text string) error {
	sh, err := s.lookup(h)
	if err != nil {
		return err
	}
	if sh.Kind != KindText {
		return fmt.Errorf("canvas: shape %d is a %s, not text", h, sh.Kind)
	}
	if sh.Text == text {
		return nil
	}
	sh.Text = text
	s.touch(sh)
	return nil
}

// SetHidden hides or shows a shape without deleting it.
func (s *Surface) SetHidden(h Handle, hidden bool) error {
	sh, err := s.lookup(h)
	if err != nil {
		return err
	}
	sh.Hidden = hidden
	s.touch(sh)
	return nil
}

// Shape returns a copy of the shape behind h.
func (s *Surface) Shape(h Handle) (Shape, bool) {
	sh, ok := s.shapes[h]
	if !ok {
		return Shape{}, false
	}
	return sh.clone(), true
}

// Exists reports whether h names a live shape.
func (s *Surface) Exists(h Handle) bool {
	_, ok := s.shapes[h]
	return ok
}

// Delete removes a shape from the surface.
func (s *Surface) Delete(h Handle) error {
	sh, err := s.lookup(h)
	if err != nil {
		return err
	}
	delete(s.shapes, h)
	for i, oh := range s.order {
		if oh == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.touch(sh)
	return nil
}

// DeleteTag removes every shape carrying tag and returns how many were removed.
func (s *Surface) DeleteTag(tag string) int {
	n := 0
	for _, h := range s.Find(tag) {
		if s.Delete(h) == nil {
			n++
		}
	}
	return n
}

// Clear removes every shape. Handles are never reused.
func (s *Surface) Clear() {
	s.shapes = make(map[Handle]*Shape)
	s.order = s.order[:0]
	s.revision++
	for t := range s.tagRev {
		s.tagRev[t] = s.revision
	}
}

// Find returns the handles of all shapes carrying tag, in paint order.
func (s *Surface) Find(tag string) []Handle {
	var out []Handle
	for _, h := range s.order {
		if s.shapes[h].HasTag(tag) {
			out = append(out, h)
		}
	}
	return out
}

// HitTag reports whether (x, y) falls inside a visible, non-text shape
// carrying tag.
func (s *Surface) HitTag(x, y float64, tag string) bool {
	for _, h := range s.order {
		sh := s.shapes[h]
		if sh.Hidden || sh.Kind == KindText || !sh.HasTag(tag) {
			continue
		}
		if sh.Bounds().Contains(x, y) {
			return true
		}
	}
	return false
}

// each calls fn for every shape in paint order: regular shapes first,
// then overlays. Background shapes are included unless skipBackground is set.
func (s *Surface) each(skipBackground bool, fn func(h Handle, sh *Shape)) {
	var overlays []Handle
	for _, h := range s.order {
		sh := s.shapes[h]
		if sh.HasTag(TagOverlay) {
			overlays = append(overlays, h)
			continue
		}
		if skipBackground && sh.HasTag(TagBackground) {
			continue
		}
		fn(h, sh)
	}
	for _, h := range overlays {
		fn(h, s.shapes[h])
	}
}
