package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantward/momentum/internal/construct"
	"github.com/quantward/momentum/internal/report"
	"github.com/quantward/momentum/internal/strategyconfig"
)

var (
	constructStrategy  string
	constructTimeframe string
	constructDate      string
)

var constructCmd = &cobra.Command{
	Use:   "construct",
	Short: "Run signal construction once and write the report CSV",
	Long: `Runs the full pipeline for one strategy and timeframe: universe
filter, strategy screens, momentum, ranking and selection. Writes the
report CSV and prints the selected portfolio. Does not touch the
simulated book or the database.`,
	RunE: runConstruct,
}

func init() {
	constructCmd.Flags().StringVar(&constructStrategy, "strategy", "CORE", "strategy (CORE|SMOOTH|FROG_IN_PAN)")
	constructCmd.Flags().StringVar(&constructTimeframe, "timeframe", "MONTHLY", "timeframe (DAILY|WEEKLY|MONTHLY)")
	constructCmd.Flags().StringVar(&constructDate, "date", "", "run date YYYY-MM-DD (default today)")
	rootCmd.AddCommand(constructCmd)
}

func runConstruct(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp(false)
	if err != nil {
		return err
	}
	defer cleanup()

	date, err := resolveDate(constructDate)
	if err != nil {
		return err
	}

	params, err := a.strategy.ToParams(strategyconfig.Run{
		Strategy:  constructStrategy,
		Timeframe: constructTimeframe,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	panel, err := a.data.Panel(ctx, date)
	if err != nil {
		return err
	}
	info, err := a.data.CompanyInfo(ctx, date, panel.Tickers())
	if err != nil {
		return err
	}

	pipeline := construct.NewPipeline(panel, info, a.log).
		WithObserver(construct.NewLoggingObserver(a.log))
	rpt, err := pipeline.Run(date, params)
	if err != nil {
		return err
	}

	writer := report.NewCSVWriter(a.cfg.Simulation.OutputDir, a.log)
	if err := writer.Write(context.Background(), rpt); err != nil {
		return err
	}

	fmt.Printf("strategy:  %s (%s)\n", rpt.Strategy, rpt.Timeframe)
	fmt.Printf("date:      %s\n", rpt.Date.Format("2006-01-02"))
	fmt.Printf("survivors: %d (dropped %d)\n", rpt.Table.Count(), len(rpt.Table.Dropped))
	fmt.Printf("longs:     %v\n", rpt.Portfolio.Longs)
	fmt.Printf("shorts:    %v\n", rpt.Portfolio.Shorts)
	fmt.Printf("report:    %s\n", writer.Path(rpt.Strategy, rpt.Timeframe, rpt.Date))
	return nil
}

func resolveDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return date, nil
}
