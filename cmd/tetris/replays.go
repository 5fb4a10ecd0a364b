package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagLimit  int
	flagDelete int64
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List journaled games",
	Long: `Display the most recent games in the replay journal, newest first.
Games marked with * were quit before game over.

Examples:
  tetris replays
  tetris replays -n 50
  tetris replays --delete 3`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Number of replays to show")
	replaysCmd.Flags().Int64Var(&flagDelete, "delete", 0, "Delete the replay with this ID")
}

func runReplays(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagDelete > 0 {
		if err := store.DeleteReplay(flagDelete); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Printf("Deleted replay #%d.\n", flagDelete)
		return
	}

	replays, err := store.RecentReplays(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	title := color.New(color.FgYellow, color.Bold)
	header := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)

	title.Println("Replays")
	fmt.Println()

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to record the first one!")
		return
	}

	header.Printf("  %-5s  %-22s  %6s  %6s  %6s  %-7s  %s\n", "ID", "Name", "Score", "Lines", "Ticks", "Board", "Date")
	for _, r := range replays {
		name := r.Name
		if !r.Finished {
			name += " *"
		}
		fmt.Printf("  %-5s  %-22s  %6d  %6d  %6d  %-7s  %s\n",
			strconv.FormatInt(r.ID, 10),
			name,
			r.Score,
			r.Lines,
			r.TickCount,
			fmt.Sprintf("%dx%d", r.Columns, r.Rows),
			dim.Sprint(r.CreatedAt.Format("2006-01-02 15:04")),
		)
	}

	fmt.Println()
	fmt.Println("Run 'tetris replay <id>' to watch one.")
}
