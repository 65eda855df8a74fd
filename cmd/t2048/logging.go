package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// logger writes to stderr; full-screen commands use tuiLogger instead.
var logger = log.New(os.Stderr)

func initLogger() error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "t2048",
	})
	return nil
}

// tuiLogger returns a logger that never writes to the terminal the game is
// drawn on. Output goes to ~/.t2048/t2048.log; the returned closer must be
// called when the program ends.
func tuiLogger() (*log.Logger, io.Closer) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), nopCloser{}
	}
	dir := filepath.Join(home, ".t2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), nopCloser{}
	}
	f, err := os.OpenFile(filepath.Join(dir, "t2048.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), nopCloser{}
	}

	l := log.NewWithOptions(f, log.Options{
		Level:           logger.GetLevel(),
		ReportTimestamp: true,
		Prefix:          "t2048",
	})
	return l, f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
