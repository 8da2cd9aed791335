package canvas

import (
	"errors"
	"testing"

	"github.com/vovakirdan/star-catcher/internal/core"
)

func TestSurfaceCreateAndCoords(t *testing.T) {
	s := NewSurface(100, 100)

	h := s.CreateRectangle(10, 20, 30, 40, Solid(core.White), "box")
	if h == 0 {
		t.Fatal("handle should not be zero")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	coords, err := s.Coords(h)
	if err != nil {
		t.Fatalf("Coords failed: %v", err)
	}
	want := []float64{10, 20, 30, 40}
	for i := range want {
		if coords[i] != want[i] {
			t.Errorf("coords[%d] = %v, want %v", i, coords[i], want[i])
		}
	}

	// Returned coordinates are a copy.
	coords[0] = 99
	b, _ := s.Bounds(h)
	if b.X0 != 10 {
		t.Error("mutating Coords result should not change the shape")
	}
}

func TestSurfaceMove(t *testing.T) {
	s := NewSurface(100, 100)
	h := s.CreatePolygon([]Point{{0, 0}, {10, 0}, {5, 8}}, Solid(core.Red))

	if err := s.Move(h, 3, 4); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	b, err := s.Bounds(h)
	if err != nil {
		t.Fatalf("Bounds failed: %v", err)
	}
	want := Box{X0: 3, Y0: 4, X1: 13, Y1: 12}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
}

func TestSurfaceSetCoords(t *testing.T) {
	s := NewSurface(100, 100)
	h := s.CreateRectangle(0, 0, 10, 10, Solid(core.White))

	if err := s.SetCoords(h, 5, 5, 15, 15); err != nil {
		t.Fatalf("SetCoords failed: %v", err)
	}
	b, _ := s.Bounds(h)
	if b.X0 != 5 || b.Y1 != 15 {
		t.Errorf("Bounds() = %+v after SetCoords", b)
	}

	if err := s.SetCoords(h, 1, 2); err == nil {
		t.Error("SetCoords with the wrong arity should fail")
	}
}

func TestSurfaceUnknownShape(t *testing.T) {
	s := NewSurface(100, 100)
	h := s.CreateOval(0, 0, 2, 2, Solid(core.White))
	if err := s.Delete(h); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	tests := []struct {
		name string
		fn   func() error
	}{
		{"Move", func() error { return s.Move(h, 1, 1) }},
		{"SetCoords", func() error { return s.SetCoords(h, 0, 0, 1, 1) }},
		{"Delete", func() error { return s.Delete(h) }},
		{"SetText", func() error { return s.SetText(h, "x") }},
		{"SetHidden", func() error { return s.SetHidden(h, true) }},
		{"Bounds", func() error { _, err := s.Bounds(h); return err }},
		{"Coords", func() error { _, err := s.Coords(h); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrUnknownShape) {
				t.Errorf("expected ErrUnknownShape, got %v", err)
			}
		})
	}
}

func TestSurfaceText(t *testing.T) {
	s := NewSurface(100, 100)
	h := s.CreateText(10, 10, "Score: 0", TextStyle{Color: core.White, Anchor: AnchorNW})

	if err := s.SetText(h, "Score: 1"); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	sh, ok := s.Shape(h)
	if !ok || sh.Text != "Score: 1" {
		t.Errorf("text = %q, want %q", sh.Text, "Score: 1")
	}

	r := s.CreateRectangle(0, 0, 1, 1, Solid(core.White))
	if err := s.SetText(r, "nope"); err == nil {
		t.Error("SetText on a rectangle should fail")
	}
}

func TestSurfaceFindAndDeleteTag(t *testing.T) {
	s := NewSurface(100, 100)
	a := s.CreateOval(0, 0, 5, 5, Solid(core.White), "star")
	s.CreateRectangle(0, 0, 5, 5, Solid(core.White), "catcher")
	b := s.CreateOval(10, 10, 15, 15, Solid(core.White), "star")

	found := s.Find("star")
	if len(found) != 2 || found[0] != a || found[1] != b {
		t.Errorf("Find(star) = %v, want [%d %d]", found, a, b)
	}

	if n := s.DeleteTag("star"); n != 2 {
		t.Errorf("DeleteTag() = %d, want 2", n)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d after DeleteTag, want 1", s.Len())
	}
}

func TestSurfaceClear(t *testing.T) {
	s := NewSurface(100, 100)
	h := s.CreateLine(0, 0, 10, 0, core.White, TagBackground)
	before := s.Revision(TagBackground)

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len() = %d after Clear", s.Len())
	}
	if s.Exists(h) {
		t.Error("cleared shape should not exist")
	}
	if s.Revision(TagBackground) == before {
		t.Error("Clear should bump tag revisions")
	}

	// Handles keep increasing after Clear.
	if next := s.CreateLine(0, 0, 1, 1, core.White); next <= h {
		t.Errorf("new handle %d should be greater than %d", next, h)
	}
}

func TestSurfaceRevision(t *testing.T) {
	s := NewSurface(100, 100)
	s.CreateLine(0, 0, 10, 0, core.White, TagBackground)
	star := s.CreateOval(0, 0, 5, 5, Solid(core.White), "star")

	bg := s.Revision(TagBackground)
	all := s.Revision("")

	if err := s.Move(star, 0, 10); err != nil {
		t.Fatal(err)
	}
	if s.Revision(TagBackground) != bg {
		t.Error("moving a star should not change the background revision")
	}
	if s.Revision("") == all {
		t.Error("moving a star should change the global revision")
	}
}

func TestSurfaceHitTag(t *testing.T) {
	s := NewSurface(500, 500)
	btn := s.CreateRectangle(200, 300, 300, 335, Solid(core.Gray), "restart")
	s.CreateText(250, 317, "Restart", TextStyle{}, "restart")

	if !s.HitTag(250, 320, "restart") {
		t.Error("point inside the button should hit")
	}
	if s.HitTag(100, 100, "restart") {
		t.Error("point outside the button should miss")
	}

	_ = s.SetHidden(btn, true)
	if s.HitTag(250, 320, "restart") {
		t.Error("hidden shapes should not be hit")
	}
}

func TestEachPaintsOverlaysLast(t *testing.T) {
	s := NewSurface(100, 100)
	over := s.CreateText(50, 50, "GAME OVER", TextStyle{}, TagOverlay)
	bg := s.CreateLine(0, 0, 10, 0, core.White, TagBackground)
	star := s.CreateOval(0, 0, 5, 5, Solid(core.White))

	var got []Handle
	s.each(false, func(h Handle, _ *Shape) { got = append(got, h) })
	want := []Handle{bg, star, over}
	if len(got) != len(want) {
		t.Fatalf("each visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("each order = %v, want %v", got, want)
			break
		}
	}

	got = got[:0]
	s.each(true, func(h Handle, _ *Shape) { got = append(got, h) })
	if len(got) != 2 {
		t.Errorf("each without background visited %v", got)
	}
}

func TestShapeBounds(t *testing.T) {
	sh := Shape{Coords: []float64{5, -15, 15, -5, -15, -5, 0, 10}}
	want := Box{X0: -15, Y0: -15, X1: 15, Y1: 10}
	if got := sh.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
	if (&Shape{}).Bounds() != (Box{}) {
		t.Error("empty shape should have a zero box")
	}
}
