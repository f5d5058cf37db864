package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ufo-race/internal/platform/tui"
	"github.com/vovakirdan/ufo-race/internal/storage"
)

var (
	flagResultsLimit int
	flagInteractive  bool
	flagClear        bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the local match log",
	Long: `Display matches finished on this machine, newest first,
followed by the win/loss record of each role.

Examples:
  ufo results
  ufo results -n 50
  ufo results -i
  ufo results --clear`,
	Run: runResults,
}

func init() {
	resultsCmd.Flags().IntVarP(&flagResultsLimit, "limit", "n", 10, "Number of matches to show")
	resultsCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the log in a table")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded match")
}

func runResults(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match log: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Match log cleared.")
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunResults(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	results, err := store.RecentResults(flagResultsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("UFO Race - Match Log")
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'ufo play --role 1' to start a race!")
		return
	}

	fmt.Printf("  %-16s  %-8s  %-6s  %-11s  %s\n", "Date", "You", "Result", "Score", "Time")
	fmt.Printf("  %-16s  %-8s  %-6s  %-11s  %s\n", "----", "---", "------", "-----", "----")
	for _, r := range results {
		outcome := "lost"
		if r.Won() {
			outcome = "won"
		}
		fmt.Printf("  %-16s  %-8s  %-6s  %-11s  %ds\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("P%d", r.Role),
			outcome,
			fmt.Sprintf("%d : %d", r.LocalScore, r.PeerScore),
			r.Duration,
		)
	}

	fmt.Println()
	for _, role := range []int{1, 2} {
		rec, err := store.RecordFor(role)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Player %d: %d played, %d won, %d lost\n", rec.Role, rec.Played, rec.Wins, rec.Losses)
	}
}
