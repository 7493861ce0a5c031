package construct

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantward/momentum/internal/contracts"
)

func rankedTable(momentums ...float64) *contracts.UniverseTable {
	table := contracts.NewUniverseTable(testDate())
	for i, m := range momentums {
		table.Rows = append(table.Rows, contracts.UniverseRow{
			Ticker:      fmt.Sprintf("T%02d", i+1),
			Momentum:    m,
			HasMomentum: true,
		})
	}
	return table
}

func TestRankTableOrdering(t *testing.T) {
	table := rankedTable(0.10, 0.30, -0.05, 0.25, -0.20)

	out, err := RankTable(table, DefaultParams())
	require.NoError(t, err)
	require.Equal(t, 5, out.Count())

	assert.Equal(t, "T02", out.Rows[0].Ticker)
	assert.Equal(t, 1, out.Rows[0].Rank)
	assert.Equal(t, "T05", out.Rows[4].Ticker)
	assert.Equal(t, 5, out.Rows[4].Rank)

	for i := 1; i < out.Count(); i++ {
		assert.GreaterOrEqual(t, out.Rows[i-1].Momentum, out.Rows[i].Momentum)
	}
}

func TestRankTableTiesKeepRowOrder(t *testing.T) {
	table := rankedTable(0.20, 0.20, 0.20)

	out, err := RankTable(table, DefaultParams())
	require.NoError(t, err)

	// Stable sort: equal momentum keeps the incoming order, ranks stay
	// unique
	assert.Equal(t, []string{"T01", "T02", "T03"}, out.Tickers())
	assert.Equal(t, []int{1, 2, 3}, []int{out.Rows[0].Rank, out.Rows[1].Rank, out.Rows[2].Rank})
}

func TestRankTableDecileSentinelBelowTen(t *testing.T) {
	table := rankedTable(0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9)

	out, err := RankTable(table, DefaultParams())
	require.NoError(t, err)

	for _, r := range out.Rows {
		assert.Equal(t, 0, r.Decile)
	}
}

func TestRankTableDecileLabels(t *testing.T) {
	momentums := make([]float64, 20)
	for i := range momentums {
		momentums[i] = float64(i) / 100
	}
	table := rankedTable(momentums...)

	out, err := RankTable(table, DefaultParams())
	require.NoError(t, err)
	require.Equal(t, 20, out.Count())

	// Rows are sorted best-first; the top row lands in decile 10, the
	// bottom row in decile 1
	assert.Equal(t, 10, out.Rows[0].Decile)
	assert.Equal(t, 1, out.Rows[19].Decile)

	for i := 1; i < out.Count(); i++ {
		assert.GreaterOrEqual(t, out.Rows[i-1].Decile, out.Rows[i].Decile)
	}
}

func TestRankTableDecileMergedEdges(t *testing.T) {
	// Heavy ties collapse quantile edges; bucketing must not fail and
	// must use fewer labels
	momentums := make([]float64, 20)
	for i := range momentums {
		momentums[i] = 0.05
	}
	momentums[19] = 0.50
	table := rankedTable(momentums...)

	out, err := RankTable(table, DefaultParams())
	require.NoError(t, err)

	labels := make(map[int]bool)
	for _, r := range out.Rows {
		assert.NotEqual(t, 0, r.Decile)
		labels[r.Decile] = true
	}
	assert.Less(t, len(labels), 10)
}

func TestSelectPortfolioTwentyTickers(t *testing.T) {
	momentums := make([]float64, 20)
	for i := range momentums {
		momentums[i] = float64(i) / 100
	}
	table := rankedTable(momentums...)

	ranked, err := RankTable(table, DefaultParams())
	require.NoError(t, err)

	params := DefaultParams()
	params.TopCutoff = 0.10
	portfolio := SelectPortfolio(ranked, params)

	assert.Equal(t, []string{"T20", "T19"}, portfolio.Longs)
	assert.Equal(t, []string{"T01", "T02"}, portfolio.Shorts)
}

func TestSelectPortfolioForcesMinimumOne(t *testing.T) {
	table := rankedTable(0.30, 0.25, 0.10, -0.05, -0.20)

	ranked, err := RankTable(table, DefaultParams())
	require.NoError(t, err)

	params := DefaultParams()
	params.TopCutoff = 0.20
	portfolio := SelectPortfolio(ranked, params)

	assert.Equal(t, []string{"T01"}, portfolio.Longs)
	assert.Equal(t, []string{"T05"}, portfolio.Shorts)
}

func TestSelectPortfolioEmptyTable(t *testing.T) {
	portfolio := SelectPortfolio(contracts.NewUniverseTable(testDate()), DefaultParams())
	assert.Empty(t, portfolio.Longs)
	assert.Empty(t, portfolio.Shorts)
}

func TestSelectPortfolioTinyUniverseMayOverlap(t *testing.T) {
	// With one survivor the same ticker heads both books; degenerate
	// inputs keep the selection-size law instead of forbidding overlap
	table := rankedTable(0.10)

	ranked, err := RankTable(table, DefaultParams())
	require.NoError(t, err)

	params := DefaultParams()
	params.TopCutoff = 0.10
	portfolio := SelectPortfolio(ranked, params)

	assert.Equal(t, []string{"T01"}, portfolio.Longs)
	assert.Equal(t, []string{"T01"}, portfolio.Shorts)
}

func TestSelectPortfolioDisjointWhenRoomAllows(t *testing.T) {
	momentums := make([]float64, 10)
	for i := range momentums {
		momentums[i] = float64(i)
	}
	table := rankedTable(momentums...)

	ranked, err := RankTable(table, DefaultParams())
	require.NoError(t, err)

	params := DefaultParams()
	params.TopCutoff = 0.30
	portfolio := SelectPortfolio(ranked, params)

	require.Len(t, portfolio.Longs, 3)
	require.Len(t, portfolio.Shorts, 3)
	for _, l := range portfolio.Longs {
		assert.NotContains(t, portfolio.Shorts, l)
	}
}
