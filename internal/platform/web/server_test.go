package web

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	_ "github.com/vovakirdan/star-catcher/internal/games/stars"
	"github.com/vovakirdan/star-catcher/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := get(t, New(Config{}), "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGames(t *testing.T) {
	w := get(t, New(Config{}), "/api/games")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var games []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &games); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, g := range games {
		if g.ID == "stars" && g.Title == "Catch Falling Stars" {
			found = true
		}
	}
	if !found {
		t.Errorf("stars missing from %+v", games)
	}
}

func TestScores(t *testing.T) {
	store := newStore(t)
	for _, r := range []storage.Round{
		{GameID: "stars", Player: "ann", Score: 4, Ticks: 90},
		{GameID: "stars", Player: "bo", Score: 9, Ticks: 200},
		{GameID: "stars", Player: "cy", Score: 1, Ticks: 30},
	} {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound: %v", err)
		}
	}
	s := New(Config{Store: store})

	w := get(t, s, "/api/scores?limit=2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body)
	}
	var resp struct {
		Game   string      `json:"game"`
		Scores []scoreJSON `json:"scores"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Game != "stars" || len(resp.Scores) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Scores[0].Player != "bo" || resp.Scores[0].Score != 9 || resp.Scores[1].Score != 4 {
		t.Errorf("scores not ordered: %+v", resp.Scores)
	}

	w = get(t, s, "/api/highscore")
	var high struct {
		HighScore int `json:"high_score"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &high); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if high.HighScore != 9 {
		t.Errorf("high_score = %d, want 9", high.HighScore)
	}
}

func TestScoresErrors(t *testing.T) {
	tests := []struct {
		name   string
		store  bool
		target string
		want   int
	}{
		{"no store", false, "/api/scores", http.StatusServiceUnavailable},
		{"no store high", false, "/api/highscore", http.StatusServiceUnavailable},
		{"unknown game", true, "/api/scores?game=pong", http.StatusNotFound},
		{"bad limit", true, "/api/scores?limit=abc", http.StatusBadRequest},
		{"limit too big", true, "/api/scores?limit=1000", http.StatusBadRequest},
		{"zero limit", true, "/api/scores?limit=0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{}
			if tt.store {
				cfg.Store = newStore(t)
			}
			if w := get(t, New(cfg), tt.target); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	s := New(Config{})

	w := get(t, s, "/preview.png?seed=7&ticks=5")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 500 || b.Dy() != 500 {
		t.Errorf("preview size = %v", b)
	}

	// Same seed and ticks give the same picture
	again := get(t, s, "/preview.png?seed=7&ticks=5")
	if !bytes.Equal(w.Body.Bytes(), again.Body.Bytes()) {
		t.Error("preview should be deterministic")
	}
}

func TestPreviewResize(t *testing.T) {
	w := get(t, New(Config{}), "/preview.png?width=100")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Errorf("resized preview = %v", b)
	}

	if w := get(t, New(Config{}), "/preview.png?width=-1"); w.Code != http.StatusBadRequest {
		t.Errorf("negative width status = %d", w.Code)
	}
}
