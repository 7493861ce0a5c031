package construct

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantward/momentum/internal/contracts"
)

func TestFilterSmoothness(t *testing.T) {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	panel := contracts.NewPricePanel()

	// Fourteen months of steady daily gains: every monthly return is
	// positive
	steady := make([]float64, 420)
	for i := range steady {
		steady[i] = 100 + float64(i)
	}
	panel.Series["STEADY"] = seriesFrom(start, steady...)

	// Steady daily losses: every monthly return is negative
	choppy := make([]float64, 420)
	for i := range choppy {
		choppy[i] = 500 - float64(i)
	}
	panel.Series["CHOPPY"] = seriesFrom(start, choppy...)

	table := contracts.NewUniverseTable(testDate())
	table.Rows = []contracts.UniverseRow{
		{Ticker: "STEADY", Momentum: 0.4, HasMomentum: true},
		{Ticker: "CHOPPY", Momentum: 0.3, HasMomentum: true},
		{Ticker: "LOSER", Momentum: -0.1, HasMomentum: true},
	}

	params := DefaultParams()
	params.SmoothnessWindowMonths = 12
	params.SmoothnessMinPositive = 7

	out, err := FilterSmoothness(table, panel, params)
	require.NoError(t, err)

	require.Equal(t, 1, out.Count())
	assert.Equal(t, "STEADY", out.Rows[0].Ticker)
	assert.Equal(t, 12, out.Rows[0].PositivePeriods)

	assert.Equal(t, "non-positive momentum", out.Dropped["LOSER"])
	assert.Contains(t, out.Dropped["CHOPPY"], "positive months")
}

func TestFilterSmoothnessEmptyInput(t *testing.T) {
	out, err := FilterSmoothness(contracts.NewUniverseTable(testDate()), contracts.NewPricePanel(), DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 0, out.Count())
}
