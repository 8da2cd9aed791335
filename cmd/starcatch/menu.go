package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-catcher/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Esc during a game goes back to the menu; your high score is kept
until you quit.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Recorded rounds (with --db)
  Q            - Quit

Examples:
  starcatch menu
  starcatch menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(nil, "starcatch")
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := setupStars(ctx, logger); err != nil {
		return err
	}

	store := openStore(logger)
	defer closeStore(store, logger)

	return tui.RunSession(store, runtimeConfig(), playerName(), logger)
}
