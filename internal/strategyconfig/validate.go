package strategyconfig

import (
	"fmt"

	"github.com/quantward/momentum/internal/contracts"
)

// ValidationError is a constraint violation that aborts the program
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints
func Validate(cfg *Config) error {
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}

	if cfg.Universe.LiquidityPercentile < 0 || cfg.Universe.LiquidityPercentile > 1 {
		return ValidationError{"universe.liquidity_percentile", "must be in [0, 1]"}
	}

	if err := validateWindows("daily", cfg.Momentum.Lookback.Daily, cfg.Momentum.Lag.Daily); err != nil {
		return err
	}
	if err := validateWindows("weekly", cfg.Momentum.Lookback.Weekly, cfg.Momentum.Lag.Weekly); err != nil {
		return err
	}
	if err := validateWindows("monthly", cfg.Momentum.Lookback.Monthly, cfg.Momentum.Lag.Monthly); err != nil {
		return err
	}

	if cfg.Smoothness.WindowMonths <= 0 {
		return ValidationError{"smoothness.window_months", "must be > 0"}
	}
	if cfg.Smoothness.MinPositiveMonths < 0 {
		return ValidationError{"smoothness.min_positive_months", "must be >= 0"}
	}
	if cfg.Smoothness.MinPositiveMonths > cfg.Smoothness.WindowMonths {
		return ValidationError{"smoothness.min_positive_months", "cannot exceed window_months"}
	}

	if cfg.Volatility.LookbackDays < 2 {
		return ValidationError{"volatility.lookback_days", "must be >= 2"}
	}
	if cfg.Volatility.CutoffPercentile < 0 || cfg.Volatility.CutoffPercentile > 1 {
		return ValidationError{"volatility.cutoff_percentile", "must be in [0, 1]"}
	}

	if cfg.Selection.TopPercentileCutoff <= 0 || cfg.Selection.TopPercentileCutoff > 1 {
		return ValidationError{"selection.top_percentile_cutoff", "must be in (0, 1]"}
	}

	if len(cfg.Runs) == 0 {
		return ValidationError{"runs", "at least one run required"}
	}
	for i, run := range cfg.Runs {
		if _, err := contracts.ParseStrategy(run.Strategy); err != nil {
			return ValidationError{fmt.Sprintf("runs[%d].strategy", i), err.Error()}
		}
		if _, err := contracts.ParseTimeframe(run.Timeframe); err != nil {
			return ValidationError{fmt.Sprintf("runs[%d].timeframe", i), err.Error()}
		}
	}

	return nil
}

func validateWindows(tf string, lookback, lag int) error {
	if lookback <= 0 {
		return ValidationError{fmt.Sprintf("momentum.lookback.%s", tf), "must be > 0"}
	}
	if lag < 0 {
		return ValidationError{fmt.Sprintf("momentum.lag.%s", tf), "must be >= 0"}
	}
	if lag >= lookback {
		return ValidationError{fmt.Sprintf("momentum.lag.%s", tf), "must be < lookback"}
	}
	return nil
}
