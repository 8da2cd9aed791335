// Package logging builds the charmbracelet/log loggers shared by the CLI,
// the TUI and the servers.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Options select where and how much to log.
type Options struct {
	// Level is a charmbracelet/log level name: debug, info, warn, error.
	Level string

	// File receives the log output. When empty, output goes to Fallback.
	File string

	// Fallback is used when File is empty. Nil discards the logs, which is
	// what a full-screen TUI needs.
	Fallback io.Writer

	// Prefix is printed before every message.
	Prefix string
}

// New creates a logger. The returned close function releases the log file
// and is never nil.
func New(opts Options) (*log.Logger, func() error, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}

	var (
		out     = opts.Fallback
		closeFn = func() error { return nil }
	)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}
	if out == nil {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
