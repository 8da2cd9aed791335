package stars

import "github.com/vovakirdan/star-catcher/internal/core"

// Tracker holds the score, the running high score and the game-over flag.
// The high score survives Reset.
type Tracker struct {
	score    int
	high     int
	gameOver bool
}

// Score returns the current score.
func (t *Tracker) Score() int { return t.score }

// HighScore returns the best score seen so far.
func (t *Tracker) HighScore() int { return t.high }

// GameOver reports whether the round has ended.
func (t *Tracker) GameOver() bool { return t.gameOver }

// Catch adds one point.
func (t *Tracker) Catch() { t.score++ }

// SyncHigh raises the high score to the current score if exceeded.
// It reports whether the high score changed.
func (t *Tracker) SyncHigh() bool {
	if t.score <= t.high {
		return false
	}
	t.high = t.score
	return true
}

// End marks the round as over. It reports whether this call ended it.
func (t *Tracker) End() bool {
	if t.gameOver {
		return false
	}
	t.gameOver = true
	return true
}

// Reset starts a new round.
func (t *Tracker) Reset() {
	t.score = 0
	t.gameOver = false
}

// State returns the tracker as a core.GameState.
func (t *Tracker) State() core.GameState {
	return core.GameState{
		Score:     t.score,
		HighScore: t.high,
		GameOver:  t.gameOver,
	}
}
