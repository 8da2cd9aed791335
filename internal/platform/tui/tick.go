// Package tui provides the Bubble Tea integration for the star catcher.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Loop identifies the game model that scheduled it.
type TickMsg struct {
	Time time.Time
	Loop uint64
}

var loopSeq atomic.Uint64

// nextLoop returns a fresh tick loop identifier.
func nextLoop() uint64 {
	return loopSeq.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick message after
// interval. The game model re-issues it while the game asks to be rescheduled.
func tickCmd(loop uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}
