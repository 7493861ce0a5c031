package strategyconfig

import (
	"github.com/quantward/momentum/internal/construct"
	"github.com/quantward/momentum/internal/contracts"
)

// Config is the full strategy configuration loaded from YAML. It is
// the single source of truth for a run: every tuning knob the pipeline
// reads comes from here, and the loaded file is hashed so a run can be
// tied back to the exact configuration that produced it.
type Config struct {
	Meta       Meta       `yaml:"meta" json:"meta"`
	Universe   Universe   `yaml:"universe" json:"universe"`
	Momentum   Momentum   `yaml:"momentum" json:"momentum"`
	Smoothness Smoothness `yaml:"smoothness" json:"smoothness"`
	Volatility Volatility `yaml:"volatility" json:"volatility"`
	Selection  Selection  `yaml:"selection" json:"selection"`
	Runs       []Run      `yaml:"runs" json:"runs"`
}

// Meta identifies the configuration
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
}

// Universe holds the liquidity and sector filter settings
type Universe struct {
	LiquidityPercentile float64  `yaml:"liquidity_percentile" json:"liquidity_percentile"`
	ExcludeSectors      []string `yaml:"exclude_sectors" json:"exclude_sectors"`
}

// Momentum holds lookback and lag window lengths per timeframe
type Momentum struct {
	Lookback PeriodCounts `yaml:"lookback" json:"lookback"`
	Lag      PeriodCounts `yaml:"lag" json:"lag"`
}

// PeriodCounts keys a period count by timeframe. A struct rather than
// a map keeps the config hash reproducible.
type PeriodCounts struct {
	Daily   int `yaml:"daily" json:"daily"`
	Weekly  int `yaml:"weekly" json:"weekly"`
	Monthly int `yaml:"monthly" json:"monthly"`
}

// For returns the count for a timeframe
func (p PeriodCounts) For(tf contracts.Timeframe) int {
	switch tf {
	case contracts.TimeframeDaily:
		return p.Daily
	case contracts.TimeframeWeekly:
		return p.Weekly
	case contracts.TimeframeMonthly:
		return p.Monthly
	}
	return 0
}

// Smoothness holds the SMOOTH variant settings
type Smoothness struct {
	WindowMonths      int `yaml:"window_months" json:"window_months"`
	MinPositiveMonths int `yaml:"min_positive_months" json:"min_positive_months"`
}

// Volatility holds the FROG_IN_PAN screen settings
type Volatility struct {
	LookbackDays     int     `yaml:"lookback_days" json:"lookback_days"`
	CutoffPercentile float64 `yaml:"cutoff_percentile" json:"cutoff_percentile"`
}

// Selection holds the long/short sizing settings
type Selection struct {
	TopPercentileCutoff float64 `yaml:"top_percentile_cutoff" json:"top_percentile_cutoff"`
}

// Run names one strategy and timeframe combination to execute
type Run struct {
	Strategy  string `yaml:"strategy" json:"strategy"`
	Timeframe string `yaml:"timeframe" json:"timeframe"`
}

// ToParams resolves the pipeline parameters for one run entry
func (c *Config) ToParams(run Run) (construct.Params, error) {
	strategy, err := contracts.ParseStrategy(run.Strategy)
	if err != nil {
		return construct.Params{}, err
	}
	timeframe, err := contracts.ParseTimeframe(run.Timeframe)
	if err != nil {
		return construct.Params{}, err
	}

	return construct.Params{
		Strategy:               strategy,
		Timeframe:              timeframe,
		LiquidityPercentile:    c.Universe.LiquidityPercentile,
		ExcludeSectors:         c.Universe.ExcludeSectors,
		Lookback:               c.Momentum.Lookback.For(timeframe),
		Lag:                    c.Momentum.Lag.For(timeframe),
		SmoothnessWindowMonths: c.Smoothness.WindowMonths,
		SmoothnessMinPositive:  c.Smoothness.MinPositiveMonths,
		VolatilityDays:         c.Volatility.LookbackDays,
		VolatilityCutoff:       c.Volatility.CutoffPercentile,
		TopCutoff:              c.Selection.TopPercentileCutoff,
	}, nil
}
