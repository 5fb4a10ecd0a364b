// Package config loads the game configuration from YAML, .env and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// ErrInvalid is returned by Validate for unusable configurations.
var ErrInvalid = errors.New("config: invalid configuration")

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Board TetrisBoard `yaml:"board"`
	Game  TetrisGame  `yaml:"game"`
	Log   LogConfig   `yaml:"log"`
}

// TetrisBoard defines the well geometry. It is fixed for a whole session.
type TetrisBoard struct {
	Columns   int `yaml:"columns"`
	Rows      int `yaml:"rows"`
	BlockSize int `yaml:"block_size"` // Rendering only: characters per cell
}

// TetrisGame defines pacing and piece colours.
type TetrisGame struct {
	TicksPerSecond int      `yaml:"ticks_per_second"`
	Palette        []string `yaml:"palette"`
}

// LogConfig controls the platform logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// Validate reports the first problem that would prevent a game from starting.
func (c TetrisConfig) Validate() error {
	if c.Board.Columns <= 0 || c.Board.Rows <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalid, c.Board.Columns, c.Board.Rows)
	}
	if minCols := engine.MaxShapeWidth(); c.Board.Columns < minCols {
		return fmt.Errorf("%w: board needs at least %d columns, got %d", ErrInvalid, minCols, c.Board.Columns)
	}
	if c.Board.BlockSize <= 0 {
		return fmt.Errorf("%w: block_size must be positive, got %d", ErrInvalid, c.Board.BlockSize)
	}
	if c.Game.TicksPerSecond <= 0 {
		return fmt.Errorf("%w: ticks_per_second must be positive, got %d", ErrInvalid, c.Game.TicksPerSecond)
	}
	if _, err := c.PaletteColors(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// PaletteColors resolves the configured colour names.
func (c TetrisConfig) PaletteColors() ([]engine.Color, error) {
	if len(c.Game.Palette) == 0 {
		return nil, fmt.Errorf("%w: palette is empty", ErrInvalid)
	}
	colors := make([]engine.Color, 0, len(c.Game.Palette))
	for _, name := range c.Game.Palette {
		col, ok := engine.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown palette colour %q", ErrInvalid, name)
		}
		colors = append(colors, col)
	}
	return colors, nil
}

// EngineConfig returns the board geometry in engine terms.
func (c TetrisConfig) EngineConfig() engine.Config {
	return engine.Config{Columns: c.Board.Columns, Rows: c.Board.Rows}
}
