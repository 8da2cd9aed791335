package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-catcher/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a game picker menu and its
own high score. With --db, finished rounds of all users are recorded in
one shared history.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  starcatch serve                           # Listen on :23234 with auto-generated key
  starcatch serve --ssh :2222               # Listen on port 2222
  starcatch serve --host-key ./my_host_key  # Use specific host key
  starcatch serve --db ./scores.db          # Record rounds

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr, "starcatch-ssh")
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := setupStars(ctx, logger); err != nil {
		return err
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Starting SSH server on %s\n", flagSSHAddr)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
