package commands

import (
	"github.com/spf13/cobra"

	"github.com/quantward/momentum/internal/report"
	"github.com/quantward/momentum/internal/scheduler/jobs"
	"github.com/quantward/momentum/internal/simbook"
)

var rebalanceDate string

var rebalanceCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Run the daily rebalance once for all due strategies",
	RunE:  runRebalance,
}

func init() {
	rebalanceCmd.Flags().StringVar(&rebalanceDate, "date", "", "run date YYYY-MM-DD (default today)")
	rootCmd.AddCommand(rebalanceCmd)
}

func runRebalance(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp(true)
	if err != nil {
		return err
	}
	defer cleanup()

	date, err := resolveDate(rebalanceDate)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	bookRepo := simbook.NewRepository(a.db, a.log)
	if err := bookRepo.EnsureSchema(ctx); err != nil {
		return err
	}
	runRepo := report.NewRepository(a.db, a.log)
	if err := runRepo.EnsureSchema(ctx); err != nil {
		return err
	}

	job := jobs.NewRebalanceJob(
		a.strategy,
		a.strategyHash,
		a.data,
		simbook.NewManager(bookRepo, a.cfg.Simulation.InitialCash, a.log),
		report.NewCSVWriter(a.cfg.Simulation.OutputDir, a.log),
		runRepo,
		a.log,
	)
	return job.RunForDate(ctx, date)
}
