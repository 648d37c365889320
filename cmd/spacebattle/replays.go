package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/space-battle/internal/platform/tui"
	"github.com/vovakirdan/space-battle/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded sessions",
	Long: `Lists the most recent recorded sessions. In a terminal the list is
interactive: press Enter on a session to verify it, or d to delete it.

Examples:
  spacebattle replays
  spacebattle replays --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive browser")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 50, "Maximum number of sessions to show")
}

func runReplays(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	replays, err := store.RecentReplays(flagLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdout.Fd())
	if flagPlain || !term.IsTerminal(fd) {
		printReplays(replays)
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(fd); termErr == nil {
		width, height = w, h
	}

	id, err := tui.RunReplayList(store, replays, width, height)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if id != 0 && !verifyReplay(store, id) {
		store.Close()
		os.Exit(1)
	}
}

func printReplays(replays []storage.Replay) {
	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'spacebattle play' to record one!")
		return
	}

	fmt.Printf("  %-5s  %-16s  %-20s  %-7s  %-6s  %-8s  %s\n", "ID", "Date", "Seed", "Score", "Kills", "Ticks", "Phase")
	fmt.Printf("  %-5s  %-16s  %-20s  %-7s  %-6s  %-8s  %s\n", "--", "----", "----", "-----", "-----", "-----", "-----")
	for _, r := range replays {
		fmt.Printf("  %-5d  %-16s  %-20d  %-7d  %-6d  %-8d  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Seed, r.Score, r.Kills, r.Ticks, r.FinalPhase)
	}
}
