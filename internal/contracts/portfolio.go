package contracts

import "time"

// TargetPortfolio is the final output of one strategy run: the tickers
// to hold long and short, in rank order (best momentum first for longs,
// worst first for shorts).
type TargetPortfolio struct {
	Strategy  Strategy  `json:"strategy"`
	Timeframe Timeframe `json:"timeframe"`
	Date      time.Time `json:"date"`
	Longs     []string  `json:"longs"`
	Shorts    []string  `json:"shorts"`
}

// Report is the full run artifact: the final ranked table plus the
// selections, suitable for persistence and review.
type Report struct {
	Strategy  Strategy      `json:"strategy"`
	Timeframe Timeframe     `json:"timeframe"`
	Date      time.Time     `json:"date"`
	Table     UniverseTable `json:"table"`
	Portfolio TargetPortfolio `json:"portfolio"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}
