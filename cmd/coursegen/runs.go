package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mapforge/coursegen/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsPreset string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent generation runs",
	Long: `Display the most recent generation runs recorded in the history
database, newest first.

Examples:
  coursegen runs
  coursegen runs --limit 20 --preset insane`,
	Run: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().StringVar(&flagRunsPreset, "preset", "", "Only show runs of one preset")
}

func runRuns(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var runs []storage.RunRecord
	if flagRunsPreset != "" {
		runs, err = store.RunsByPreset(flagRunsPreset, flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'coursegen generate' to record the first one.")
		return
	}

	// Print header
	fmt.Printf("  %-8s  %-12s  %-9s  %-7s  %-8s  %s\n", "Preset", "Seed", "Size", "Steps", "Result", "Date")
	fmt.Printf("  %-8s  %-12s  %-9s  %-7s  %-8s  %s\n", "------", "----", "----", "-----", "------", "----")

	for _, run := range runs {
		result := "ok"
		if !run.Success {
			result = "failed"
		}
		size := fmt.Sprintf("%dx%d", run.Width, run.Height)
		dateStr := run.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-8s  %-12s  %-9s  %-7d  %-8s  %s\n",
			run.Preset, truncate(run.SeedLabel, 12), size, run.Steps, result, dateStr)
	}

	if flagRunsPreset != "" {
		succeeded, total, err := store.SuccessRate(flagRunsPreset)
		if err == nil && total > 0 {
			fmt.Println()
			fmt.Printf("Success rate: %d/%d\n", succeeded, total)
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
