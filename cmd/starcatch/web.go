package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-catcher/internal/platform/web"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve recorded rounds and previews over HTTP",
	Long: `Start an HTTP server with a small JSON API.

Routes:
  GET /healthz                           - Liveness probe
  GET /api/games                         - Registered games
  GET /api/scores?game=stars&limit=10    - Best recorded rounds (needs --db)
  GET /api/highscore?game=stars          - Best recorded score (needs --db)
  GET /preview.png?seed=1&ticks=40       - Render a round after some ticks

Examples:
  starcatch web --db ~/.arcade/scores.db
  starcatch web --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "addr", ":8080", "HTTP listen address")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr, "starcatch-web")
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := setupStars(ctx, logger); err != nil {
		return err
	}

	if flagLogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	store := openStore(logger)
	defer closeStore(store, logger)

	return web.New(web.Config{
		Address: flagHTTPAddr,
		Store:   store,
		Logger:  logger,
	}).Run(ctx)
}
