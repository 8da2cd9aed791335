package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-catcher/internal/platform/tui"
	"github.com/vovakirdan/star-catcher/internal/registry"
	"github.com/vovakirdan/star-catcher/internal/storage"
)

const defaultDBPath = "~/.arcade/scores.db"

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresAll    bool
	flagScoresClear  bool
	flagScoresTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show recorded rounds for a game",
	Long: `Display the best recorded rounds for the specified game (default: stars).

Reads --db, or ~/.arcade/scores.db when --db is not given.

Examples:
  starcatch scores
  starcatch scores --recent --limit 20
  starcatch scores --all
  starcatch scores --interactive
  starcatch scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest rounds instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded round, best first (ignores --limit)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded rounds of the game")
	scoresCmd.Flags().BoolVarP(&flagScoresTUI, "interactive", "i", false, "Browse rounds in a full-screen table")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'starcatch list' to see available games", gameID)
	}

	path := flagDBPath
	if path == "" {
		path = defaultDBPath
	}
	store, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	switch {
	case flagScoresClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared recorded rounds of %s.\n", registry.Title(gameID))
		return nil

	case flagScoresTUI:
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	return printScores(cmd.OutOrStdout(), store, gameID)
}

func printScores(out io.Writer, store *storage.Store, gameID string) error {
	var (
		entries []storage.ScoreEntry
		err     error
		heading = "High Scores"
	)
	switch {
	case flagScoresAll:
		heading = "All Rounds"
		entries, err = store.AllScores(gameID)
	case flagScoresRecent:
		heading = "Recent Rounds"
		entries, err = store.RecentRounds(gameID, flagScoresLimit)
	default:
		entries, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s - %s\n\n", heading, registry.Title(gameID))

	if len(entries) == 0 {
		fmt.Fprintln(out, "No rounds recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'starcatch play %s --db %s' to record one!\n", gameID, defaultDBPath)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-12s  %-6s  %-6s  %s\n", "Rank", "Player", "Score", "Ticks", "Date")
	fmt.Fprintf(out, "  %-4s  %-12s  %-6s  %-6s  %s\n", "----", "------", "-----", "-----", "----")
	for i, e := range entries {
		player := e.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(out, "  %-4d  %-12s  %-6d  %-6d  %s\n",
			i+1, player, e.Score, e.Ticks, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rounds: %d   Best: %d   Average: %.1f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	return nil
}
