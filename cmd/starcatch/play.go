package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-catcher/internal/core"
	"github.com/vovakirdan/star-catcher/internal/platform/tui"
	"github.com/vovakirdan/star-catcher/internal/platform/window"
	"github.com/vovakirdan/star-catcher/internal/registry"
	"github.com/vovakirdan/star-catcher/internal/storage"
)

var (
	flagWindow      bool
	flagWindowScale int
	flagPlayer      string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: stars).

Controls:
  Left/Right, A/D  - Move the catcher
  R, Enter         - Restart after game over
  Mouse click      - Press the Restart button
  Ctrl+S           - Save a screenshot (terminal only)
  Q/Ctrl+C, Esc    - Quit

Examples:
  starcatch play
  starcatch play --window --scale 2
  starcatch play --config ./my-stars.yaml --watch-config
  starcatch play --seed 42 --db ~/.arcade/scores.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Open a native window instead of using the terminal")
	playCmd.Flags().IntVar(&flagWindowScale, "scale", 1, "Window size multiplier")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with your rounds (default: $USER)")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'starcatch list' to see available games", gameID)
	}

	// The terminal belongs to the game, log to --log-file only
	var fallback io.Writer
	if flagWindow {
		fallback = os.Stderr
	}
	logger, closeLog, err := newLogger(fallback, "starcatch")
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := setupStars(ctx, logger); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore(logger)
	defer closeStore(store, logger)

	player := flagPlayer
	if player == "" {
		player = playerName()
	}
	cfg := runtimeConfig()

	if flagWindow {
		return playWindow(game, cfg, store, logger, player)
	}

	return tui.Run(game, cfg, tui.GameOptions{
		Store:  store,
		Logger: logger,
		Player: player,
	})
}

func playWindow(game registry.Game, cfg core.RuntimeConfig, store *storage.Store, logger *log.Logger, player string) error {
	wg, ok := game.(window.Game)
	if !ok {
		return fmt.Errorf("game %q cannot run in a window", game.ID())
	}

	return window.Run(wg, cfg, window.Options{
		Scale:  flagWindowScale,
		Logger: logger,
		OnRound: func(state core.GameState, ticks int) {
			logger.Info("round over", "game", game.ID(), "score", state.Score, "high", state.HighScore, "ticks", ticks)
			if store == nil || state.Score <= 0 {
				return
			}
			if _, err := store.SaveRound(storage.Round{
				GameID: game.ID(),
				Player: player,
				Score:  state.Score,
				Ticks:  ticks,
			}); err != nil {
				logger.Warn("could not save round", "error", err)
			}
		},
	})
}
