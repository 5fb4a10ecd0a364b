package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagNoRecord bool

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. The game defaults to tetris.

Controls:
  Left/A, Right/D   - Move
  Down/S            - Soft drop
  Up/W/X            - Rotate
  P/Esc             - Pause
  R                 - Restart (after game over)
  Ctrl+S            - Screenshot
  Q/Ctrl+C          - Quit

Every game is journaled to the replay database unless --no-record is set.

Examples:
  tetris play
  tetris play --seed 42 --fps 60
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not journal the game")
}

// runtimeConfig builds the platform settings from the terminal and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := tetris.ID
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available games.")
		os.Exit(1)
	}

	cfg := mustLoadConfig()
	logger, closeLog := newLogger(cfg)
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open replay journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay journal", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open replay journal: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	savedID, runErr := tui.Run(game, tui.Options{
		Store:  store,
		Logger: logger,
		Config: runtimeConfig(),
		Record: !flagNoRecord,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game loop failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}

	st := game.State()
	fmt.Printf("Score: %d  Lines: %d\n", st.Score, st.Lines)
	if savedID > 0 {
		fmt.Printf("Replay saved as #%d. Watch it with 'tetris replay %d'.\n", savedID, savedID)
	}
}
