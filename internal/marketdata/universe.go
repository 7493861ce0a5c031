package marketdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
)

// LoadUniverseTickers reads the candidate ticker list from a CSV
// file. The first column of each record is the ticker; a header row
// named "ticker" or "symbol" is skipped. Tickers are deduplicated and
// returned sorted.
func LoadUniverseTickers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("universe csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("universe csv: %w", err)
	}

	seen := make(map[string]bool)
	var tickers []string
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		ticker := strings.ToUpper(strings.TrimSpace(record[0]))
		if ticker == "" {
			continue
		}
		if i == 0 && (ticker == "TICKER" || ticker == "SYMBOL") {
			continue
		}
		if seen[ticker] {
			continue
		}
		seen[ticker] = true
		tickers = append(tickers, ticker)
	}

	if len(tickers) == 0 {
		return nil, fmt.Errorf("universe csv %s has no tickers", path)
	}

	sort.Strings(tickers)
	return tickers, nil
}
