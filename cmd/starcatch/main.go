// starcatch is Catch Falling Stars: move a catcher along the bottom of the
// field and catch the stars before they hit the ground.
//
// Usage:
//
//	starcatch list              - List available games
//	starcatch play [game]       - Play in the terminal, or in a window with --window
//	starcatch menu              - Start menu to pick games interactively
//	starcatch serve             - Start SSH server for remote play
//	starcatch web               - Serve round history and previews over HTTP
//	starcatch scores [game]     - Show recorded rounds for a game
//	starcatch snapshot [game]   - Render a frame to PNG
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Record rounds in this database (off by default)
//	--log-level <lvl>  - debug, info, warn or error
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/star-catcher/internal/core"
	"github.com/vovakirdan/star-catcher/internal/logging"
	"github.com/vovakirdan/star-catcher/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/star-catcher/internal/games/stars"
)

const defaultGame = "stars"

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starcatch",
	Short: "Catch Falling Stars - in your terminal, a window or over SSH",
	Long: `Catch Falling Stars: stars fall from the sky, move the catcher
left and right to catch them. Missing a single star ends the round.

Available commands:
  list      - Show all available games
  play      - Play directly (terminal, or --window)
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  web       - HTTP API for recorded rounds and previews
  scores    - View recorded rounds
  snapshot  - Render a frame to PNG

Examples:
  starcatch play
  starcatch play --window
  starcatch play --config ./my-stars.yaml --watch-config
  starcatch menu --db ~/.arcade/scores.db
  starcatch serve --ssh :2222
  starcatch snapshot --seed 42 --ticks 60 --out stars.png`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to round history database (empty = no history)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// newLogger builds the command logger. Full-screen commands pass a nil
// fallback so nothing is written over the game.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func() error, error) {
	return logging.New(logging.Options{
		Level:    flagLogLevel,
		File:     flagLogFile,
		Fallback: fallback,
		Prefix:   prefix,
	})
}

// openStore opens the round history when --db is set. A database that
// cannot be opened is reported and play continues without history.
func openStore(logger *log.Logger) *storage.Store {
	if flagDBPath == "" {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("no round history", "db", flagDBPath, "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store, logger *log.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close scores database", "error", err)
	}
}

// runtimeConfig sizes the game to the terminal, or 80x24 without one.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// playerName is recorded with every round played locally.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultGame
}
