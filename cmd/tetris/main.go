// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris                   - Play (same as "tetris play")
//	tetris play [game]       - Play a game
//	tetris list              - List available games
//	tetris replays           - List journaled games
//	tetris replay [id]       - Watch a journaled game (browser without id)
//
// Global flags:
//
//	--fps <rate>         - Platform tick rate (default: 30)
//	--seed <value>       - RNG seed for reproducible games
//	--db <path>          - Replay journal path (default: ~/.arcade/tetris.db)
//	--config <path>      - Custom tetris.yaml
//	--log-file <path>    - Log destination (default: ~/.arcade/tetris.log)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `A falling-block puzzle game for the terminal.

Available commands:
  play     - Play a game (default)
  list     - Show all available games
  replays  - List journaled games
  replay   - Watch a journaled game

Examples:
  tetris
  tetris play --seed 42
  tetris replays
  tetris replay 3`,
	PersistentPreRun: loadEnv,
	Run: func(cmd *cobra.Command, args []string) {
		runPlay(cmd, nil)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Platform tick rate (steps per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to replay journal")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tetris.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", defaultLogFile, "Log file path")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// loadEnv reads .env from the working directory before any command runs.
func loadEnv(cmd *cobra.Command, args []string) {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}
}

// mustLoadConfig loads and installs the game configuration, exiting on error.
func mustLoadConfig() config.TetrisConfig {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tetris.Configure(cfg)
	return cfg
}
