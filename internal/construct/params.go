package construct

import (
	"strconv"

	"github.com/quantward/momentum/internal/contracts"
)

// Params are the tuning knobs for one strategy run. All percentiles
// are fractions in [0, 1]; lookback and lag are counted in resampled
// periods of the run's timeframe.
type Params struct {
	Strategy  contracts.Strategy
	Timeframe contracts.Timeframe

	// Universe filter
	LiquidityPercentile float64
	ExcludeSectors      []string

	// Momentum
	Lookback int
	Lag      int

	// Smoothness filter (SMOOTH only); the window is always counted
	// in months, whatever the run's timeframe
	SmoothnessWindowMonths int
	SmoothnessMinPositive  int

	// Volatility screen (FROG_IN_PAN only)
	VolatilityDays   int
	VolatilityCutoff float64

	// Selection
	TopCutoff float64
}

// DefaultParams returns the standard 12-2 monthly momentum settings
func DefaultParams() Params {
	return Params{
		Strategy:              contracts.StrategyCore,
		Timeframe:             contracts.TimeframeMonthly,
		LiquidityPercentile:   0.20,
		ExcludeSectors:        []string{"Financial Services", "Financials"},
		Lookback:              12,
		Lag:                   2,
		SmoothnessWindowMonths: 12,
		SmoothnessMinPositive:  7,
		VolatilityDays:        252,
		VolatilityCutoff:      0.80,
		TopCutoff:             0.10,
	}
}

// Validate checks the parameter ranges
func (p Params) Validate() error {
	if _, err := contracts.ParseStrategy(string(p.Strategy)); err != nil {
		return err
	}
	if _, err := contracts.ParseTimeframe(string(p.Timeframe)); err != nil {
		return err
	}
	if p.LiquidityPercentile < 0 || p.LiquidityPercentile > 1 {
		return contracts.InvalidParameterError{Param: "liquidity_percentile", Value: formatFloat(p.LiquidityPercentile)}
	}
	if p.Lookback <= 0 {
		return contracts.InvalidParameterError{Param: "lookback", Value: formatInt(p.Lookback)}
	}
	if p.Lag < 0 || p.Lag >= p.Lookback {
		return contracts.InvalidParameterError{Param: "lag", Value: formatInt(p.Lag)}
	}
	if p.VolatilityCutoff < 0 || p.VolatilityCutoff > 1 {
		return contracts.InvalidParameterError{Param: "volatility_cutoff", Value: formatFloat(p.VolatilityCutoff)}
	}
	if p.VolatilityDays < 2 {
		return contracts.InvalidParameterError{Param: "volatility_days", Value: formatInt(p.VolatilityDays)}
	}
	if p.TopCutoff <= 0 || p.TopCutoff > 1 {
		return contracts.InvalidParameterError{Param: "top_cutoff", Value: formatFloat(p.TopCutoff)}
	}
	if p.SmoothnessMinPositive < 0 {
		return contracts.InvalidParameterError{Param: "smoothness_min_positive", Value: formatInt(p.SmoothnessMinPositive)}
	}
	if p.SmoothnessWindowMonths <= 0 {
		return contracts.InvalidParameterError{Param: "smoothness_window_months", Value: formatInt(p.SmoothnessWindowMonths)}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}
