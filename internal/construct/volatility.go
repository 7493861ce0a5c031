package construct

import (
	"fmt"
	"math"

	"github.com/quantward/momentum/internal/contracts"
)

// ScreenVolatility keeps only low-volatility names. Each row's
// volatility is the sample standard deviation of its last
// VolatilityDays daily returns; rows above the cross-sectional
// volatility percentile are dropped, as are rows whose volatility
// cannot be computed. The screen runs before momentum in the
// FROG_IN_PAN plan so momentum ranks only calm names.
func ScreenVolatility(table *contracts.UniverseTable, panel *contracts.PricePanel, params Params) (*contracts.UniverseTable, error) {
	out := table.Clone(nil)
	measured := make([]contracts.UniverseRow, 0, len(table.Rows))

	for _, r := range table.Rows {
		series, ok := panel.Get(r.Ticker)
		if !ok {
			out.Dropped[r.Ticker] = "no price history"
			continue
		}

		returns := DailyReturns(series.AdjCloses())
		if len(returns) > params.VolatilityDays {
			returns = returns[len(returns)-params.VolatilityDays:]
		}

		vol := SampleStdDev(returns)
		if math.IsNaN(vol) {
			out.Dropped[r.Ticker] = "volatility undefined"
			continue
		}

		r.Volatility = vol
		r.HasVolatility = true
		measured = append(measured, r)
	}

	if len(measured) == 0 {
		out.Rows = nil
		return out, nil
	}

	vols := make([]float64, len(measured))
	for i, r := range measured {
		vols[i] = r.Volatility
	}
	cutoff := Quantile(vols, params.VolatilityCutoff)

	rows := make([]contracts.UniverseRow, 0, len(measured))
	for _, r := range measured {
		if r.Volatility > cutoff {
			out.Dropped[r.Ticker] = fmt.Sprintf("volatility above cutoff %.4f", cutoff)
			continue
		}
		rows = append(rows, r)
	}

	out.Rows = rows
	return out, nil
}
