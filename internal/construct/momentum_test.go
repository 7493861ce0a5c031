package construct

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantward/momentum/internal/contracts"
)

func momentumParams(tf contracts.Timeframe, lookback, lag int) Params {
	params := DefaultParams()
	params.Timeframe = tf
	params.Lookback = lookback
	params.Lag = lag
	return params
}

func tableFor(tickers ...string) *contracts.UniverseTable {
	table := contracts.NewUniverseTable(testDate())
	for _, ticker := range tickers {
		table.Rows = append(table.Rows, contracts.UniverseRow{
			Ticker: ticker, MarketCap: 1e9, Sector: "Technology",
		})
	}
	return table
}

func TestCalculateMomentumDaily(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	panel := contracts.NewPricePanel()
	panel.Series["GROW"] = seriesFrom(start, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15)

	out, err := CalculateMomentum(tableFor("GROW"), panel, momentumParams(contracts.TimeframeDaily, 10, 2))
	require.NoError(t, err)
	require.Equal(t, 1, out.Count())

	// With 15 closes, lookback 10 and lag 2 the window runs from
	// close[4]=5 to close[12]=13
	assert.True(t, out.Rows[0].HasMomentum)
	assert.InDelta(t, 13.0/5.0-1, out.Rows[0].Momentum, 1e-9)
}

func TestCalculateMomentumInsufficientHistory(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	panel := contracts.NewPricePanel()
	panel.Series["SHORT"] = seriesFrom(start, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)

	out, err := CalculateMomentum(tableFor("SHORT"), panel, momentumParams(contracts.TimeframeDaily, 10, 2))
	require.NoError(t, err)

	assert.Equal(t, 0, out.Count())
	assert.Equal(t, "insufficient history for lookback", out.Dropped["SHORT"])
}

func TestCalculateMomentumMissingSeries(t *testing.T) {
	out, err := CalculateMomentum(tableFor("GHOST"), contracts.NewPricePanel(), momentumParams(contracts.TimeframeDaily, 10, 2))
	require.NoError(t, err)

	assert.Equal(t, 0, out.Count())
	assert.Equal(t, "no price history", out.Dropped["GHOST"])
}

func TestCalculateMomentumMonthlyUsesResampledCloses(t *testing.T) {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 450)
	for i := range closes {
		closes[i] = 100 * math.Pow(1.001, float64(i))
	}
	panel := contracts.NewPricePanel()
	panel.Series["GROW"] = seriesFrom(start, closes...)

	params := momentumParams(contracts.TimeframeMonthly, 12, 2)
	out, err := CalculateMomentum(tableFor("GROW"), panel, params)
	require.NoError(t, err)
	require.Equal(t, 1, out.Count())

	monthly := Resample(panel.Series["GROW"], contracts.TimeframeMonthly)
	n := len(monthly)
	want := monthly[n-1-2]/monthly[n-1-12] - 1

	assert.InDelta(t, want, out.Rows[0].Momentum, 1e-9)
}

func TestWeeklyAndDailyMomentumDiffer(t *testing.T) {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 730)
	for i := range closes {
		closes[i] = 100 * math.Pow(1.001, float64(i))
	}
	panel := contracts.NewPricePanel()
	panel.Series["GROW"] = seriesFrom(start, closes...)

	weekly, err := CalculateMomentum(tableFor("GROW"), panel, momentumParams(contracts.TimeframeWeekly, 10, 2))
	require.NoError(t, err)
	require.Equal(t, 1, weekly.Count())

	daily, err := CalculateMomentum(tableFor("GROW"), panel, momentumParams(contracts.TimeframeDaily, 10, 2))
	require.NoError(t, err)
	require.Equal(t, 1, daily.Count())

	// Same lookback and lag, but the weekly window spans roughly seven
	// times as many calendar days
	assert.NotEqual(t, weekly.Rows[0].Momentum, daily.Rows[0].Momentum)
	assert.Greater(t, weekly.Rows[0].Momentum, daily.Rows[0].Momentum)
}
