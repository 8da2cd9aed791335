package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/star-catcher/internal/storage"
)

func updateBoard(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sb
}

func TestScoreboardModes(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	for _, score := range []int{3, 9, 5} {
		if _, err := store.SaveRound(storage.Round{GameID: "tui-stub", Player: "ann", Score: score, Ticks: 10}); err != nil {
			t.Fatalf("SaveRound: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if m.Mode() != "Best" || m.Rows() != 3 {
		t.Fatalf("mode %s rows %d", m.Mode(), m.Rows())
	}
	if m.entries[0].Score != 9 {
		t.Errorf("best mode should start with the top score, got %d", m.entries[0].Score)
	}
	if view := m.View(); !strings.Contains(view, "3 rounds") {
		t.Errorf("stats missing from view:\n%s", view)
	}

	m = updateBoard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Mode() != "Recent" || m.entries[0].Score != 5 {
		t.Errorf("recent mode should start with the latest round, mode %s first %d", m.Mode(), m.entries[0].Score)
	}

	m = updateBoard(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if m.Rows() != 0 {
		t.Errorf("rows = %d", m.Rows())
	}
	if view := m.View(); !strings.Contains(view, "--db") {
		t.Errorf("view should explain how to enable history:\n%s", view)
	}

	m = updateBoard(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
