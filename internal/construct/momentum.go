package construct

import (
	"math"

	"github.com/quantward/momentum/internal/contracts"
)

// CalculateMomentum computes the lagged lookback return for every row.
// The daily series is first resampled to the run's timeframe; with n
// resampled closes the momentum is
//
//	close[n-1-lag] / close[n-1-lookback] - 1
//
// which skips the most recent lag periods to sidestep short-term
// reversal. Rows with fewer than lookback+1 closes, or with an
// undefined ratio, are dropped.
func CalculateMomentum(table *contracts.UniverseTable, panel *contracts.PricePanel, params Params) (*contracts.UniverseTable, error) {
	out := table.Clone(nil)
	rows := make([]contracts.UniverseRow, 0, len(table.Rows))

	for _, r := range table.Rows {
		series, ok := panel.Get(r.Ticker)
		if !ok {
			out.Dropped[r.Ticker] = "no price history"
			continue
		}

		closes := Resample(series, params.Timeframe)
		n := len(closes)
		if n < params.Lookback+1 {
			out.Dropped[r.Ticker] = "insufficient history for lookback"
			continue
		}

		base := closes[n-1-params.Lookback]
		end := closes[n-1-params.Lag]
		if base == 0 {
			out.Dropped[r.Ticker] = "momentum undefined"
			continue
		}

		momentum := end/base - 1
		if math.IsNaN(momentum) || math.IsInf(momentum, 0) {
			out.Dropped[r.Ticker] = "momentum undefined"
			continue
		}

		r.Momentum = momentum
		r.HasMomentum = true
		rows = append(rows, r)
	}

	out.Rows = rows
	return out, nil
}
