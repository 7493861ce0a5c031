package construct

import (
	"fmt"

	"github.com/quantward/momentum/internal/contracts"
)

// FilterSmoothness keeps rows whose momentum accrued steadily. Total
// momentum must be positive, and the ticker's monthly returns over the
// last SmoothnessWindowMonths must include at least
// SmoothnessMinPositive positive months. The monthly resample is used
// regardless of the run's timeframe so the steadiness measure stays
// comparable across timeframes. Runs after momentum.
func FilterSmoothness(table *contracts.UniverseTable, panel *contracts.PricePanel, params Params) (*contracts.UniverseTable, error) {
	out := table.Clone(nil)
	rows := make([]contracts.UniverseRow, 0, len(table.Rows))

	for _, r := range table.Rows {
		if !r.HasMomentum || r.Momentum <= 0 {
			out.Dropped[r.Ticker] = "non-positive momentum"
			continue
		}

		series, ok := panel.Get(r.Ticker)
		if !ok {
			out.Dropped[r.Ticker] = "no price history"
			continue
		}

		r.PositivePeriods = positiveMonths(series, params.SmoothnessWindowMonths)
		if r.PositivePeriods < params.SmoothnessMinPositive {
			out.Dropped[r.Ticker] = fmt.Sprintf("only %d positive months, need %d", r.PositivePeriods, params.SmoothnessMinPositive)
			continue
		}
		rows = append(rows, r)
	}

	out.Rows = rows
	return out, nil
}

// positiveMonths counts positive monthly returns among the most
// recent window months
func positiveMonths(series contracts.Series, window int) int {
	monthly := Resample(series, contracts.TimeframeMonthly)
	returns := DailyReturns(monthly)
	if len(returns) > window {
		returns = returns[len(returns)-window:]
	}

	count := 0
	for _, ret := range returns {
		if ret > 0 {
			count++
		}
	}
	return count
}
