package marketdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickers.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadUniverseTickers(t *testing.T) {
	path := writeCSV(t, "ticker\nmsft\nAAPL\nGOOG\naapl\n")

	tickers, err := LoadUniverseTickers(path)
	require.NoError(t, err)

	// Header skipped, dedup after uppercasing, sorted output
	assert.Equal(t, []string{"AAPL", "GOOG", "MSFT"}, tickers)
}

func TestLoadUniverseTickersNoHeader(t *testing.T) {
	path := writeCSV(t, "AAPL\nMSFT\n")

	tickers, err := LoadUniverseTickers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, tickers)
}

func TestLoadUniverseTickersEmptyFile(t *testing.T) {
	path := writeCSV(t, "ticker\n")

	_, err := LoadUniverseTickers(path)
	require.Error(t, err)
}

func TestLoadUniverseTickersMissingFile(t *testing.T) {
	_, err := LoadUniverseTickers(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
