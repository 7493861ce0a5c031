package construct

import (
	"math"
	"sort"

	"github.com/quantward/momentum/internal/contracts"
)

// minDecileCount is the smallest table that gets real decile labels.
// Below it every row carries the sentinel decile 0.
const minDecileCount = 10

// RankTable orders rows by momentum, best first, and assigns dense
// ranks starting at 1. The sort is stable, so ties keep their
// incoming row order. Decile labels run 1 (lowest momentum) to 10
// (highest); tables with fewer than ten rows get the sentinel 0.
func RankTable(table *contracts.UniverseTable, params Params) (*contracts.UniverseTable, error) {
	rows := make([]contracts.UniverseRow, len(table.Rows))
	copy(rows, table.Rows)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Momentum > rows[j].Momentum
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}

	assignDeciles(rows)

	out := table.Clone(rows)
	return out, nil
}

// assignDeciles labels each row with its momentum decile. Edges are
// the nine interior quantiles of the momentum column; duplicate edges
// collapse, so heavily tied tables may use fewer than ten labels.
func assignDeciles(rows []contracts.UniverseRow) {
	if len(rows) < minDecileCount {
		for i := range rows {
			rows[i].Decile = 0
		}
		return
	}

	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.Momentum
	}

	edges := make([]float64, 0, 9)
	for i := 1; i <= 9; i++ {
		e := Quantile(values, float64(i)/10)
		if len(edges) == 0 || e != edges[len(edges)-1] {
			edges = append(edges, e)
		}
	}

	for i := range rows {
		d := 1
		for _, e := range edges {
			if rows[i].Momentum > e {
				d++
			}
		}
		rows[i].Decile = d
	}
}

// SelectPortfolio picks the long and short books from a ranked table.
// N is a fixed fraction of the surviving count, floored, never less
// than one while any row survives. Longs are the N best-ranked rows,
// shorts the N worst; on tiny tables the two may overlap.
func SelectPortfolio(table *contracts.UniverseTable, params Params) contracts.TargetPortfolio {
	portfolio := contracts.TargetPortfolio{
		Strategy:  params.Strategy,
		Timeframe: params.Timeframe,
		Date:      table.Date,
	}

	count := table.Count()
	if count == 0 {
		return portfolio
	}

	n := int(math.Floor(float64(count) * params.TopCutoff))
	if n < 1 {
		n = 1
	}
	if n > count {
		n = count
	}

	longs := make([]string, 0, n)
	for _, r := range table.Rows[:n] {
		longs = append(longs, r.Ticker)
	}

	shorts := make([]string, 0, n)
	for i := count - 1; i >= count-n; i-- {
		shorts = append(shorts, table.Rows[i].Ticker)
	}

	portfolio.Longs = longs
	portfolio.Shorts = shorts
	return portfolio
}
