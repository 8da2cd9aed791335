package stars

import (
	"github.com/vovakirdan/star-catcher/internal/canvas"
	"github.com/vovakirdan/star-catcher/internal/core"
)

// advance runs one tick over a snapshot of the active stars. Removals and
// replacement spawns are collected during the scan and applied after it.
func (g *Game) advance() core.StepResult {
	var res core.StepResult
	if g.score.GameOver() {
		res.State = g.State()
		return res
	}

	catcher := g.catcher.Rect()
	bottom := float64(g.cfg.Field.Height)
	catchLine := float64(catcher.Y)

	var removed []canvas.Handle
	for _, fs := range g.store.Snapshot() {
		if err := g.surface.Move(fs.Shape, 0, float64(fs.Speed)); err != nil {
			continue
		}
		box, err := g.surface.Bounds(fs.Shape)
		if err != nil {
			continue
		}

		if box.Y1 > bottom {
			removed = append(removed, fs.Shape)
			res.Missed++
			if g.score.End() {
				g.showGameOver()
			}
			if g.cfg.Rules.HaltOnMiss {
				break
			}
			continue
		}

		if catcher.OverlapsSpan(box.X0, box.X1) && box.Y1 >= catchLine {
			removed = append(removed, fs.Shape)
			res.Caught++
			g.score.Catch()
		}
	}

	for _, h := range removed {
		if g.store.Remove(h) {
			g.store.Spawn()
		}
	}

	g.updateLabels()

	res.State = g.State()
	res.Reschedule = !g.score.GameOver()
	return res
}
