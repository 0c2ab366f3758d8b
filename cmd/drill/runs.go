package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-drill/internal/registry"
	"github.com/vovakirdan/tui-drill/internal/share"
	"github.com/vovakirdan/tui-drill/internal/storage"
	"github.com/vovakirdan/tui-drill/internal/token"
)

var (
	flagRunsLimit int
	flagRunsLinks bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [game]",
	Short: "List recorded attempts",
	Long: `List the most recent attempts, newest first. Each run can be replayed
with 'drill replay --run <id>'.

Examples:
  drill runs
  drill runs drill_classic --limit 5
  drill runs --links`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsLinks, "links", false, "Print the share link of each run")
}

func runRuns(_ *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown game %q, run 'drill list' to see available games", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(gameID, flagRunsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No attempts recorded yet.")
		return nil
	}

	fmt.Printf("  %-5s  %-14s  %-6s  %-20s  %-5s  %-6s  %s\n", "ID", "Game", "Result", "Seed", "Pipe", "Score", "Date")
	for _, r := range runs {
		a := r.Attempt
		fmt.Printf("  %-5d  %-14s  %-6s  %-20d  %-5d  %-6d  %s\n",
			r.ID, r.GameID, a.Result, a.Seed, a.PipeLength, a.Score, r.CreatedAt.Format("2006-01-02 15:04"))
		if flagRunsLinks {
			fmt.Printf("         %s\n", runLink(r).String())
		}
	}
	return nil
}

// runLink rebuilds the share link of a stored run.
func runLink(r storage.RunEntry) share.Link {
	a := r.Attempt
	return share.Link{
		Level: share.Level{
			Seed:         a.Seed,
			SpeedDivider: a.SpeedDivider,
			Randomness:   a.Randomness,
			Boulders:     a.Level,
			Scene:        a.Scene,
			MaxStarts:    a.MaxStarts,
		},
		Scheme: token.Scheme(a.Scheme),
		Token:  a.Token,
	}
}
