package construct

import (
	"github.com/quantward/momentum/internal/contracts"
)

// Resample collapses a daily series to one close per period of the
// given timeframe, keeping the last observation of each period. The
// input must be in ascending date order; DAILY returns the closes
// unchanged. Weekly periods follow the ISO week, monthly periods the
// calendar month.
func Resample(series contracts.Series, tf contracts.Timeframe) []float64 {
	if len(series) == 0 {
		return nil
	}

	if tf == contracts.TimeframeDaily {
		return series.AdjCloses()
	}

	var out []float64
	prevKey := periodKey(series[0], tf)
	last := series[0].AdjClose

	for _, c := range series[1:] {
		key := periodKey(c, tf)
		if key != prevKey {
			out = append(out, last)
			prevKey = key
		}
		last = c.AdjClose
	}
	// The in-progress period contributes its latest close
	out = append(out, last)
	return out
}

func periodKey(c contracts.Candle, tf contracts.Timeframe) int {
	switch tf {
	case contracts.TimeframeWeekly:
		year, week := c.Date.ISOWeek()
		return year*100 + week
	case contracts.TimeframeMonthly:
		return c.Date.Year()*100 + int(c.Date.Month())
	default:
		return 0
	}
}
