package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/quantward/momentum/internal/contracts"
	"github.com/quantward/momentum/pkg/logger"
)

// CSVWriter serializes run reports to timestamped CSV files in the
// configured output directory
type CSVWriter struct {
	outputDir string
	logger    *logger.Logger
}

// NewCSVWriter creates a CSV report writer
func NewCSVWriter(outputDir string, log *logger.Logger) *CSVWriter {
	return &CSVWriter{outputDir: outputDir, logger: log}
}

var csvHeader = []string{
	"Ticker", "Rank", "Decile", "Momentum", "Volatility", "PositivePeriods", "MarketCap", "Sector",
}

// Write writes the full ranked table to
// {strategy}_{timeframe}_report_{timestamp}.csv
func (w *CSVWriter) Write(ctx context.Context, report *contracts.Report) error {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s_report_%s.csv",
		strings.ToLower(string(report.Strategy)),
		strings.ToLower(string(report.Timeframe)),
		report.Date.Format("20060102"))
	path := filepath.Join(w.outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, row := range report.Table.Rows {
		record := []string{
			row.Ticker,
			strconv.Itoa(row.Rank),
			strconv.Itoa(row.Decile),
			strconv.FormatFloat(row.Momentum, 'f', 6, 64),
			volatilityField(row),
			strconv.Itoa(row.PositivePeriods),
			strconv.FormatFloat(row.MarketCap, 'f', 0, 64),
			row.Sector,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush report csv: %w", err)
	}

	w.logger.WithFields(map[string]interface{}{
		"path": path,
		"rows": report.Table.Count(),
	}).Info("Report written")
	return nil
}

func volatilityField(row contracts.UniverseRow) string {
	if !row.HasVolatility {
		return ""
	}
	return strconv.FormatFloat(row.Volatility, 'f', 6, 64)
}

// Path returns the file a report for the given run would be written
// to. Used by the API to serve the latest report.
func (w *CSVWriter) Path(strategy contracts.Strategy, timeframe contracts.Timeframe, date time.Time) string {
	name := fmt.Sprintf("%s_%s_report_%s.csv",
		strings.ToLower(string(strategy)),
		strings.ToLower(string(timeframe)),
		date.Format("20060102"))
	return filepath.Join(w.outputDir, name)
}
