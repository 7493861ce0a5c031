package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quantward/momentum/internal/report"
	"github.com/quantward/momentum/internal/scheduler"
	"github.com/quantward/momentum/internal/scheduler/jobs"
	"github.com/quantward/momentum/internal/simbook"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the rebalance scheduler in the foreground",
	RunE:  runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp(true)
	if err != nil {
		return err
	}
	defer cleanup()

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

	sched := scheduler.New(a.log)
	if err := sched.AddJob(job); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutdown signal received")
	return nil
}
