package construct

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/quantward/momentum/internal/contracts"
)

// BuildInitialTable seeds the working table from the price panel and
// company metadata. Tickers missing either a market cap figure or a
// sector are dropped up front; every other ticker enters with its
// static columns set. Rows come out in ascending ticker order so runs
// are deterministic.
func BuildInitialTable(date time.Time, panel *contracts.PricePanel, info contracts.CompanyInfo) *contracts.UniverseTable {
	table := contracts.NewUniverseTable(date)

	tickers := panel.Tickers()
	rows := make([]contracts.UniverseRow, 0, len(tickers))
	for _, ticker := range tickers {
		profile, ok := info[ticker]
		if !ok || profile.MarketCap == nil {
			table.Dropped[ticker] = "missing market cap"
			continue
		}
		sector := strings.TrimSpace(profile.Sector)
		if sector == "" {
			table.Dropped[ticker] = "missing sector"
			continue
		}
		rows = append(rows, contracts.UniverseRow{
			Ticker:    ticker,
			MarketCap: *profile.MarketCap,
			Sector:    sector,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Ticker < rows[j].Ticker })

	table.Rows = rows
	return table
}

// FilterUniverse applies the liquidity and sector filters. The
// liquidity cutoff is the configured market-cap percentile over the
// incoming rows; rows at or above the cutoff survive. Excluded
// sectors are then removed. An empty input yields an empty output.
func FilterUniverse(table *contracts.UniverseTable, params Params) (*contracts.UniverseTable, error) {
	if table.Count() == 0 {
		return table.Clone(nil), nil
	}

	caps := make([]float64, len(table.Rows))
	for i, r := range table.Rows {
		caps[i] = r.MarketCap
	}
	cutoff := Quantile(caps, params.LiquidityPercentile)

	excluded := make(map[string]bool, len(params.ExcludeSectors))
	for _, s := range params.ExcludeSectors {
		excluded[strings.TrimSpace(s)] = true
	}

	out := table.Clone(nil)
	rows := make([]contracts.UniverseRow, 0, len(table.Rows))
	for _, r := range table.Rows {
		if r.MarketCap < cutoff {
			out.Dropped[r.Ticker] = fmt.Sprintf("market cap below liquidity cutoff %.0f", cutoff)
			continue
		}
		if excluded[r.Sector] {
			out.Dropped[r.Ticker] = fmt.Sprintf("excluded sector %s", r.Sector)
			continue
		}
		rows = append(rows, r)
	}

	out.Rows = rows
	return out, nil
}
