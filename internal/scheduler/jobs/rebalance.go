package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/quantward/momentum/internal/construct"
	"github.com/quantward/momentum/internal/contracts"
	"github.com/quantward/momentum/internal/marketdata"
	"github.com/quantward/momentum/internal/rebalance"
	"github.com/quantward/momentum/internal/report"
	"github.com/quantward/momentum/internal/simbook"
	"github.com/quantward/momentum/internal/strategyconfig"
	"github.com/quantward/momentum/pkg/logger"
)

// RebalanceJob is the daily pipeline run. For every configured
// strategy and timeframe whose calendar says today is a trading day,
// it constructs signals over the day's frozen panel, persists the
// report, and moves the simulated book toward the target portfolio.
type RebalanceJob struct {
	cfg        *strategyconfig.Config
	configHash string
	data       *marketdata.Manager
	books      *simbook.Manager
	writer     *report.CSVWriter
	runs       *report.Repository
	logger     *logger.Logger

	schedule string
	now      func() time.Time
}

// NewRebalanceJob creates the daily rebalance job
func NewRebalanceJob(
	cfg *strategyconfig.Config,
	configHash string,
	data *marketdata.Manager,
	books *simbook.Manager,
	writer *report.CSVWriter,
	runs *report.Repository,
	log *logger.Logger,
) *RebalanceJob {
	return &RebalanceJob{
		cfg:        cfg,
		configHash: configHash,
		data:       data,
		books:      books,
		writer:     writer,
		runs:       runs,
		logger:     log,
		schedule:   "30 16 * * MON-FRI",
		now:        time.Now,
	}
}

// Name implements scheduler.Job
func (j *RebalanceJob) Name() string { return "daily-rebalance" }

// Schedule implements scheduler.Job; runs after the close on weekdays
func (j *RebalanceJob) Schedule() string { return j.schedule }

// Run implements scheduler.Job
func (j *RebalanceJob) Run(ctx context.Context) error {
	return j.RunForDate(ctx, j.now().UTC().Truncate(24*time.Hour))
}

// RunForDate executes every due strategy run for a specific date
func (j *RebalanceJob) RunForDate(ctx context.Context, date time.Time) error {
	due := j.dueRuns(date)
	if len(due) == 0 {
		j.logger.WithField("date", date.Format("2006-01-02")).Info("No strategies due today")
		return nil
	}

	panel, err := j.data.Panel(ctx, date)
	if err != nil {
		return fmt.Errorf("load panel: %w", err)
	}
	info, err := j.data.CompanyInfo(ctx, date, panel.Tickers())
	if err != nil {
		return fmt.Errorf("load company info: %w", err)
	}

	pipeline := construct.NewPipeline(panel, info, j.logger).
		WithObserver(construct.NewLoggingObserver(j.logger))

	var firstErr error
	for _, run := range due {
		if err := j.runOne(ctx, pipeline, panel, run, date); err != nil {
			j.logger.WithFields(map[string]interface{}{
				"strategy":  run.Strategy,
				"timeframe": run.Timeframe,
			}).WithError(err).Error("Strategy run failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// dueRuns filters the configured runs down to those whose timeframe
// trades on this date
func (j *RebalanceJob) dueRuns(date time.Time) []strategyconfig.Run {
	var due []strategyconfig.Run
	for _, run := range j.cfg.Runs {
		tf, err := contracts.ParseTimeframe(run.Timeframe)
		if err != nil {
			continue
		}
		if rebalance.IsRebalanceDay(date, tf) {
			due = append(due, run)
		}
	}
	return due
}

func (j *RebalanceJob) runOne(ctx context.Context, pipeline *construct.Pipeline, panel *contracts.PricePanel, run strategyconfig.Run, date time.Time) error {
	params, err := j.cfg.ToParams(run)
	if err != nil {
		return err
	}

	rpt, err := pipeline.Run(date, params)
	if err != nil {
		return err
	}

	if err := j.writer.Write(ctx, rpt); err != nil {
		return err
	}
	if err := j.runs.SaveSummary(ctx, rpt, j.configHash); err != nil {
		return err
	}

	state, err := j.books.LoadOrInit(ctx, params.Strategy, params.Timeframe)
	if err != nil {
		return err
	}

	prices := latestPrices(panel)
	orders, skipped, err := rebalance.CalculateOrders(state, rpt.Portfolio, prices)
	if err != nil {
		return err
	}
	for _, ticker := range skipped {
		j.logger.WithField("ticker", ticker).Warn("Ticker skipped during rebalance")
	}

	next, err := simbook.ApplyOrders(state, orders)
	if err != nil {
		return err
	}
	if err := j.books.Save(ctx, params.Strategy, params.Timeframe, next); err != nil {
		return err
	}

	total, unpriced := simbook.TotalValue(next, prices)
	j.logger.WithFields(map[string]interface{}{
		"strategy":  params.Strategy,
		"timeframe": params.Timeframe,
		"orders":    len(orders),
		"value":     total,
		"unpriced":  len(unpriced),
	}).Info("Book rebalanced")
	return nil
}

// latestPrices extracts the most recent adjusted close per ticker
func latestPrices(panel *contracts.PricePanel) map[string]float64 {
	prices := make(map[string]float64, panel.Count())
	for ticker, series := range panel.Series {
		if len(series) > 0 {
			prices[ticker] = series[len(series)-1].AdjClose
		}
	}
	return prices
}
