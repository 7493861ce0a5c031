package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantward/momentum/internal/report"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the most recent pipeline runs",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&statusLimit, "limit", 10, "number of runs to show")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp(true)
	if err != nil {
		return err
	}
	defer cleanup()

	runRepo := report.NewRepository(a.db, a.log)
	summaries, err := runRepo.Latest(cmd.Context(), statusLimit)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("no runs recorded yet")
		return nil
	}

	fmt.Printf("%-12s %-12s %-10s %-9s %-8s %s\n",
		"STRATEGY", "TIMEFRAME", "DATE", "SURVIVORS", "TOOK", "LONGS/SHORTS")
	for _, s := range summaries {
		fmt.Printf("%-12s %-12s %-10s %-9d %-8s %d/%d\n",
			s.Strategy, s.Timeframe, s.RunDate.Format("2006-01-02"),
			s.Survivors, fmt.Sprintf("%dms", s.DurationMS),
			len(s.Longs), len(s.Shorts))
	}
	return nil
}
