package stars

import "github.com/vovakirdan/star-catcher/internal/canvas"

// StarSnapshot describes one falling star.
type StarSnapshot struct {
	Shape canvas.Handle
	X, Y  float64 // Center
	Speed int
}

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick           uint64
	Round          int
	Score          int
	HighScore      int
	GameOver       bool
	CatcherX       int
	Stars          []StarSnapshot
	RestartVisible bool
	Shapes         int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.surface == nil {
		return Snapshot{}
	}

	stars := make([]StarSnapshot, 0, g.store.Len())
	for _, fs := range g.store.Snapshot() {
		b, err := g.store.Bounds(fs)
		if err != nil {
			continue
		}
		stars = append(stars, StarSnapshot{
			Shape: fs.Shape,
			X:     (b.X0 + b.X1) / 2,
			Y:     (b.Y0 + b.Y1) / 2,
			Speed: fs.Speed,
		})
	}

	return Snapshot{
		Tick:           g.tick,
		Round:          g.round,
		Score:          g.score.Score(),
		HighScore:      g.score.HighScore(),
		GameOver:       g.score.GameOver(),
		CatcherX:       g.catcher.X(),
		Stars:          stars,
		RestartVisible: len(g.surface.Find(TagRestart)) > 0,
		Shapes:         g.surface.Len(),
	}
}
