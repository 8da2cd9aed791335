// Package web serves round history and rendered previews over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/star-catcher/internal/core"
	"github.com/vovakirdan/star-catcher/internal/logging"
	"github.com/vovakirdan/star-catcher/internal/registry"
	"github.com/vovakirdan/star-catcher/internal/storage"
)

const (
	defaultLimit  = 10
	maxLimit      = 100
	maxPreviewPx  = 2000
	maxPreviewTks = 2000
)

// imager is implemented by games that render a full-resolution field.
type imager interface {
	Image() image.Image
}

// Config configures the HTTP server.
type Config struct {
	Address string
	Store   *storage.Store // Optional, score routes answer 503 without it
	Logger  *log.Logger
}

// Server is the HTTP front end.
type Server struct {
	cfg    Config
	logger *log.Logger
	router *gin.Engine
}

// New builds the router.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Server{cfg: cfg, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	r.GET("/healthz", s.health)
	r.GET("/preview.png", s.preview)

	api := r.Group("/api")
	api.GET("/games", s.games)
	api.GET("/scores", s.scores)
	api.GET("/highscore", s.highScore)

	s.router = r
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) games(c *gin.Context) {
	type game struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	list := registry.List()
	out := make([]game, 0, len(list))
	for _, g := range list {
		out = append(out, game{ID: g.ID, Title: g.Title})
	}
	c.JSON(http.StatusOK, out)
}

type scoreJSON struct {
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	Ticks     int       `json:"ticks"`
	CreatedAt time.Time `json:"created_at"`
}

// gameParam reads ?game= and checks it is registered.
func gameParam(c *gin.Context) (string, bool) {
	id := c.DefaultQuery("game", "stars")
	if !registry.Exists(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown game %q", id)})
		return "", false
	}
	return id, true
}

// intParam reads an optional integer query parameter within [lo, hi].
func intParam(c *gin.Context, name string, def, lo, hi int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("%s must be an integer in [%d,%d]", name, lo, hi),
		})
		return 0, false
	}
	return n, true
}

func (s *Server) requireStore(c *gin.Context) bool {
	if s.cfg.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "round history disabled"})
		return false
	}
	return true
}

func (s *Server) scores(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	id, ok := gameParam(c)
	if !ok {
		return
	}
	limit, ok := intParam(c, "limit", defaultLimit, 1, maxLimit)
	if !ok {
		return
	}

	entries, err := s.cfg.Store.TopScores(id, limit)
	if err != nil {
		s.logger.Error("cannot load scores", "game", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load scores"})
		return
	}

	out := make([]scoreJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, scoreJSON{Player: e.Player, Score: e.Score, Ticks: e.Ticks, CreatedAt: e.CreatedAt})
	}
	c.JSON(http.StatusOK, gin.H{"game": id, "scores": out})
}

func (s *Server) highScore(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	id, ok := gameParam(c)
	if !ok {
		return
	}

	high, err := s.cfg.Store.HighScore(id)
	if err != nil {
		s.logger.Error("cannot load high score", "game", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load high score"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": id, "high_score": high})
}

// preview renders a fresh round after the requested number of ticks.
func (s *Server) preview(c *gin.Context) {
	id, ok := gameParam(c)
	if !ok {
		return
	}
	seed, ok := intParam(c, "seed", 1, 0, 1<<31-1)
	if !ok {
		return
	}
	ticks, ok := intParam(c, "ticks", 0, 0, maxPreviewTks)
	if !ok {
		return
	}
	width, ok := intParam(c, "width", 0, 0, maxPreviewPx)
	if !ok {
		return
	}

	game, err := registry.Create(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	im, ok := game.(imager)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "game has no image output"})
		return
	}

	cfg := core.DefaultConfig()
	cfg.Seed = int64(seed)
	game.Reset(cfg)
	for i := 0; i < ticks; i++ {
		if !game.Step().Reschedule {
			break
		}
	}

	img := im.Image()
	if width > 0 {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	c.Header("Cache-Control", "no-store")
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := png.Encode(c.Writer, img); err != nil {
		s.logger.Warn("cannot encode preview", "error", err)
	}
}
