package construct

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantward/momentum/internal/contracts"
)

// noisySeries alternates up and down moves of the given size so its
// return standard deviation scales with amplitude
func noisySeries(start time.Time, days int, amplitude float64) contracts.Series {
	closes := make([]float64, days)
	price := 100.0
	for i := range closes {
		if i%2 == 0 {
			price *= 1 + amplitude
		} else {
			price *= 1 - amplitude
		}
		closes[i] = price
	}
	return seriesFrom(start, closes...)
}

func TestScreenVolatilityDropsHighVolTail(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	panel := contracts.NewPricePanel()
	panel.Series["CALM1"] = noisySeries(start, 300, 0.005)
	panel.Series["CALM2"] = noisySeries(start, 300, 0.006)
	panel.Series["CALM3"] = noisySeries(start, 300, 0.007)
	panel.Series["WILD"] = noisySeries(start, 300, 0.10)

	params := DefaultParams()
	params.VolatilityDays = 252
	params.VolatilityCutoff = 0.75

	out, err := ScreenVolatility(tableFor("CALM1", "CALM2", "CALM3", "WILD"), panel, params)
	require.NoError(t, err)

	assert.Equal(t, 3, out.Count())
	assert.Contains(t, out.Dropped["WILD"], "volatility above cutoff")
	for _, r := range out.Rows {
		assert.True(t, r.HasVolatility)
		assert.False(t, math.IsNaN(r.Volatility))
	}
}

func TestScreenVolatilityInsufficientHistory(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	panel := contracts.NewPricePanel()
	panel.Series["ONE"] = seriesFrom(start, 100)

	out, err := ScreenVolatility(tableFor("ONE"), panel, DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, 0, out.Count())
	assert.Equal(t, "volatility undefined", out.Dropped["ONE"])
}

func TestScreenVolatilityEmptyInput(t *testing.T) {
	out, err := ScreenVolatility(contracts.NewUniverseTable(testDate()), contracts.NewPricePanel(), DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 0, out.Count())
}
