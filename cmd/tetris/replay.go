package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay [id]",
	Short: "Watch a journaled game",
	Long: `Play back a game from the replay journal. Without an ID a browser
lists the recent replays to pick from.

Examples:
  tetris replay
  tetris replay 3 --fps 60`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	if err := watchReplay(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func watchReplay(args []string) error {
	cfg := mustLoadConfig()
	logger, closeLog := newLogger(cfg)
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	rc := runtimeConfig()

	var id int64
	if len(args) > 0 {
		id, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid replay ID %q", args[0])
		}
	} else {
		id, err = tui.RunReplayBrowser(store, rc.ScreenW, rc.ScreenH)
		if err != nil || id == 0 {
			return err
		}
	}

	entry, err := store.Replay(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("no replay #%d", id)
	}

	rec, err := tetris.FromReplay(*entry)
	if err != nil {
		logger.Error("corrupt replay", "id", id, "error", err)
		return err
	}
	logger.Info("replay started", "id", id, "name", entry.Name, "ticks", rec.Len())

	rc.Seed = rec.Seed
	_, err = tui.Run(tetris.NewReplay(rec), tui.Options{Logger: logger, Config: rc})
	return err
}
