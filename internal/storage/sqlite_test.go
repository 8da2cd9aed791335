package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// saveScore records an anonymous round.
func saveScore(t *testing.T, store *Store, gameID string, score int) {
	t.Helper()
	if _, err := store.SaveRound(Round{GameID: gameID, Score: score}); err != nil {
		t.Fatalf("SaveRound(%s, %d) failed: %v", gameID, score, err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	rounds := []Round{
		{GameID: "stars", Player: "ann", Score: 10, Ticks: 300},
		{GameID: "stars", Player: "bob", Score: 5, Ticks: 120},
		{GameID: "stars", Player: "ann", Score: 20, Ticks: 610},
		{GameID: "other", Player: "cid", Score: 50},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	scores, err := store.TopScores("stars", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{20, 10, 5}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Player != "ann" || scores[0].Ticks != 610 {
		t.Errorf("top entry = %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	other, err := store.TopScores("other", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 score for other game, got %d", len(other))
	}
}

func TestStoreRejectsNegativeScore(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRound(Round{GameID: "stars", Score: -1}); err == nil {
		t.Error("negative score should be rejected")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		saveScore(t, store, "test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreRecentRounds(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{3, 9, 1} {
		saveScore(t, store, "stars", s)
	}

	recent, err := store.RecentRounds("stars", 2)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 1 || recent[1].Score != 9 {
		t.Errorf("RecentRounds() = %+v, want latest first", recent)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("stars")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	saveScore(t, store, "stars", 100)
	saveScore(t, store, "stars", 300)
	saveScore(t, store, "stars", 200)

	high, err = store.HighScore("stars")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	saveScore(t, store, "stars", 100)
	saveScore(t, store, "stars", 200)
	saveScore(t, store, "other", 300)

	if err := store.ClearScores("stars"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	starsScores, _ := store.TopScores("stars", 10)
	if len(starsScores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(starsScores))
	}

	otherScores, _ := store.TopScores("other", 10)
	if len(otherScores) != 1 {
		t.Errorf("Other game's scores should not be affected")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		saveScore(t, store, "test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("stars")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	saveScore(t, store, "stars", 4)
	saveScore(t, store, "stars", 8)

	stats, err := store.GetGameStats("stars")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 8 || stats.AvgScore != 6 || stats.TotalScore != 12 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
