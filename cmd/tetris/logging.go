package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

const defaultLogFile = "~/.arcade/tetris.log"

// newLogger opens the log file. The TUI owns the terminal, so logs never go
// to stderr while a game runs. The returned close func is never nil.
func newLogger(cfg config.TetrisConfig) (*log.Logger, func()) {
	level := flagLogLevel
	if level == "" {
		level = cfg.Log.Level
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}

	var out io.Writer = io.Discard
	closeFn := func() {}
	if f, err := openLogFile(flagLogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	} else if f != nil {
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
		Level:           lvl,
	})
	return logger, closeFn
}

// openLogFile opens path for appending. An empty path disables logging.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
