package report

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantward/momentum/internal/contracts"
	"github.com/quantward/momentum/pkg/logger"
)

func TestCSVWriterWrite(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir, logger.NewNop())

	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	rpt := &contracts.Report{
		Strategy:  contracts.StrategyFrogInPan,
		Timeframe: contracts.TimeframeMonthly,
		Date:      date,
		Table: contracts.UniverseTable{
			Date: date,
			Rows: []contracts.UniverseRow{
				{
					Ticker: "AAPL", Rank: 1, Decile: 10, Momentum: 0.421337,
					Volatility: 0.0123, HasVolatility: true,
					PositivePeriods: 9, MarketCap: 3e12, Sector: "Technology",
				},
				{
					Ticker: "XOM", Rank: 2, Decile: 1, Momentum: -0.05,
					MarketCap: 4e11, Sector: "Energy",
				},
			},
		},
	}

	require.NoError(t, writer.Write(context.Background(), rpt))

	path := filepath.Join(dir, "frog_in_pan_monthly_report_20260828.csv")
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "AAPL", records[1][0])
	assert.Equal(t, "1", records[1][1])
	assert.Equal(t, "10", records[1][2])
	assert.Equal(t, "0.421337", records[1][3])
	assert.Equal(t, "0.012300", records[1][4])

	// Volatility column is blank when the screen never ran
	assert.Equal(t, "", records[2][4])

	assert.Equal(t, path, writer.Path(rpt.Strategy, rpt.Timeframe, date))
}

func TestCSVWriterEmptyTable(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir, logger.NewNop())

	rpt := &contracts.Report{
		Strategy:  contracts.StrategyCore,
		Timeframe: contracts.TimeframeDaily,
		Date:      time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, writer.Write(context.Background(), rpt))

	f, err := os.Open(filepath.Join(dir, "core_daily_report_20260828.csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
