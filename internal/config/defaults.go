package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default Tetris configuration:
// a 10x20 well, three ticks per second and six piece colours.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: TetrisBoard{
			Columns:   10,
			Rows:      20,
			BlockSize: 2,
		},
		Game: TetrisGame{
			TicksPerSecond: 3,
			Palette:        []string{"red", "green", "blue", "yellow", "cyan", "magenta"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default tetris.yaml.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultTetrisYAML...)
}
