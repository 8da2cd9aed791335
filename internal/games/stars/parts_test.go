package stars

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/star-catcher/internal/canvas"
	"github.com/vovakirdan/star-catcher/internal/config"
	"github.com/vovakirdan/star-catcher/internal/core"
)

func TestStarPolygon(t *testing.T) {
	pts := StarPolygon(100, 200)
	if len(pts) != 10 {
		t.Fatalf("got %d vertices, want 10", len(pts))
	}
	if pts[0] != (canvas.Point{X: 100, Y: 185}) {
		t.Errorf("top vertex = %+v", pts[0])
	}

	s := canvas.NewSurface(500, 500)
	b, _ := s.Bounds(s.CreatePolygon(pts, canvas.Solid(core.White)))
	want := canvas.Box{X0: 100 - StarRadius, Y0: 200 - StarRadius, X1: 100 + StarRadius, Y1: 200 + StarRadius}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

func TestRandInt(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := randInt(rng, 1, 3)
		if v < 1 || v > 3 {
			t.Fatalf("randInt(1,3) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Errorf("randInt should reach both bounds, saw %v", seen)
	}
	if randInt(rng, 5, 5) != 5 {
		t.Error("empty range should return lo")
	}
}

func TestRandomBrightColorDeterministic(t *testing.T) {
	a := RandomBrightColor(rand.New(rand.NewSource(9)))
	b := RandomBrightColor(rand.New(rand.NewSource(9)))
	if a != b {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func TestDrawGradient(t *testing.T) {
	s := canvas.NewSurface(500, 500)
	DrawGradient(s, 500)

	lines := s.Find(canvas.TagBackground)
	if len(lines) != 500 {
		t.Fatalf("got %d lines, want 500", len(lines))
	}

	tests := []struct {
		row  int
		gray uint8
	}{
		{0, 0},
		{250, 127},
		{499, 254},
	}
	for _, tt := range tests {
		sh, _ := s.Shape(lines[tt.row])
		if sh.Style.Outline != core.GrayLevel(tt.gray) {
			t.Errorf("row %d color = %v, want gray %d", tt.row, sh.Style.Outline, tt.gray)
		}
		if sh.Coords[1] != float64(tt.row) || sh.Coords[2] != 500 {
			t.Errorf("row %d coords = %v", tt.row, sh.Coords)
		}
	}
}

func TestDrawStarField(t *testing.T) {
	s := canvas.NewSurface(500, 500)
	cfg := config.DefaultStarsConfig().Background
	DrawStarField(s, rand.New(rand.NewSource(3)), cfg)

	dots := s.Find(canvas.TagBackground)
	if len(dots) != 100 {
		t.Fatalf("got %d dots, want 100", len(dots))
	}
	for _, h := range dots {
		b, _ := s.Bounds(h)
		size := b.Width()
		if size < 1 || size > 3 || b.Height() != size {
			t.Errorf("dot %d has size %vx%v", h, b.Width(), b.Height())
		}
		if b.X0 < 0 || b.X0 > 500 || b.Y0 < 0 || b.Y0 > 500 {
			t.Errorf("dot %d at (%v,%v)", h, b.X0, b.Y0)
		}
	}
}

func TestStore(t *testing.T) {
	s := canvas.NewSurface(500, 500)
	st := NewStore(s, rand.New(rand.NewSource(5)), config.DefaultStarsConfig().Stars)

	a := st.Spawn()
	b := st.SpawnAt(100, 100, 12, core.Red)
	if st.Len() != 2 {
		t.Fatalf("Len() = %d", st.Len())
	}

	snap := st.Snapshot()
	if !st.Remove(a.Shape) {
		t.Fatal("Remove should find the first star")
	}
	if len(snap) != 2 {
		t.Error("snapshot should not change after Remove")
	}
	if s.Exists(a.Shape) {
		t.Error("removed star's shape should be deleted")
	}
	if st.Remove(a.Shape) {
		t.Error("second Remove should report false")
	}

	box, err := st.Bounds(b)
	if err != nil || box.X0 != 85 || box.Y1 != 115 {
		t.Errorf("Bounds() = %+v, %v", box, err)
	}
}

func TestTracker(t *testing.T) {
	var tr Tracker

	tr.Catch()
	tr.Catch()
	if !tr.SyncHigh() || tr.HighScore() != 2 {
		t.Errorf("high score = %d, want 2", tr.HighScore())
	}
	if tr.SyncHigh() {
		t.Error("SyncHigh without a new best should report false")
	}

	if !tr.End() {
		t.Error("first End should end the round")
	}
	if tr.End() {
		t.Error("second End should report false")
	}

	tr.Reset()
	st := tr.State()
	if st.Score != 0 || st.GameOver || st.HighScore != 2 {
		t.Errorf("state after Reset = %+v", st)
	}
}

func TestCatcherRefusesOvershoot(t *testing.T) {
	s := canvas.NewSurface(500, 500)
	cfg := config.DefaultStarsConfig().Catcher
	cfg.Step = 30
	var tr Tracker
	c := NewCatcher(s, cfg, 500, core.White, &tr)

	for i := 0; i < 20; i++ {
		c.MoveLeft()
	}
	if c.X() != 10 {
		t.Errorf("x = %d, want 10: a move below 0 is refused", c.X())
	}

	tr.End()
	if c.MoveRight() {
		t.Error("moves should be refused after game over")
	}
}
