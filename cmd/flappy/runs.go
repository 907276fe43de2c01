package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsPlayer string
	flagRunsDelete int64
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long: `Display the most recent recorded runs, newest first.

Examples:
  flappy runs
  flappy runs --player alice --limit 5
  flappy runs --delete 12`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().StringVar(&flagRunsPlayer, "player", "", "Only show runs by this player")
	runsCmd.Flags().Int64Var(&flagRunsDelete, "delete", 0, "Delete the run with this id")
}

func runRuns(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer store.Close()

	if flagRunsDelete != 0 {
		if err := store.DeleteRun(flagRunsDelete); err != nil {
			return err
		}
		logger.Info("run deleted", "id", flagRunsDelete)
		return nil
	}

	var runs []storage.Run
	if flagRunsPlayer != "" {
		runs, err = store.PlayerRuns(flagRunsPlayer, flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(flagRunsLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Println("Recorded runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' and your runs will show up here!")
		return nil
	}

	fmt.Printf("  %-6s  %-16s  %-12s  %7s  %5s  %s\n", "ID", "Date", "Player", "Ticks", "Score", "End")
	fmt.Printf("  %-6s  %-16s  %-12s  %7s  %5s  %s\n", "--", "----", "------", "-----", "-----", "---")

	for _, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-6d  %-16s  %-12s  %7d  %5d  %s\n", r.ID, dateStr, r.Player, r.Ticks, r.Score, r.EndReason)
	}

	if stats, err := store.Stats(flagRunsPlayer); err == nil {
		fmt.Println()
		fmt.Printf("%d runs, %d ticks played\n", stats.Runs, stats.TotalTicks)
	}
	fmt.Println()
	fmt.Println("Run 'flappy replay <id>' to watch one.")
	return nil
}
