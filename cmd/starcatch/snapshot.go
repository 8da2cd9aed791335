package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-catcher/internal/core"
	"github.com/vovakirdan/star-catcher/internal/registry"
)

var (
	flagSnapshotOut   string
	flagSnapshotTicks int
	flagSnapshotText  bool
)

// pngSaver is implemented by games with a full-resolution renderer.
type pngSaver interface {
	SavePNG(path string) error
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [game]",
	Short: "Render a frame to PNG",
	Long: `Start a round without any input, advance it and save the field as PNG.

With the same --seed, --ticks and config the picture is always the same.

Examples:
  starcatch snapshot --seed 42 --out stars.png
  starcatch snapshot --seed 42 --ticks 200 --text`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVarP(&flagSnapshotOut, "out", "o", "snapshot.png", "Output PNG path")
	snapshotCmd.Flags().IntVar(&flagSnapshotTicks, "ticks", 0, "Ticks to advance before rendering")
	snapshotCmd.Flags().BoolVar(&flagSnapshotText, "text", false, "Also print the terminal rendering")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'starcatch list' to see available games", gameID)
	}

	logger, closeLog, err := newLogger(cmd.ErrOrStderr(), "starcatch")
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	if err := setupStars(context.Background(), logger); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	saver, ok := game.(pngSaver)
	if !ok {
		return fmt.Errorf("game %q has no image output", gameID)
	}

	cfg := runtimeConfig()
	game.Reset(cfg)

	played := 0
	for played < flagSnapshotTicks {
		played++
		if !game.Step().Reschedule {
			break
		}
	}

	if err := saver.SavePNG(flagSnapshotOut); err != nil {
		return err
	}

	state := game.State()
	logger.Info("snapshot saved", "path", flagSnapshotOut, "seed", cfg.Seed, "ticks", played,
		"score", state.Score, "game_over", state.GameOver)

	if flagSnapshotText {
		screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
		game.Render(screen)
		fmt.Fprintln(cmd.OutOrStdout(), screen.String())
	}
	return nil
}
