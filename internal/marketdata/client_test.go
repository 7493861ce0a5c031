package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantward/momentum/pkg/config"
	"github.com/quantward/momentum/pkg/logger"
)

const chartJSON = `{
  "chart": {
    "result": [{
      "timestamp": [1704153600, 1704240000, 1704326400],
      "indicators": {
        "quote": [{
          "open": [100, 101, 102],
          "high": [101, 102, 103],
          "low": [99, 100, 101],
          "close": [100.5, 101.5, 102.5],
          "volume": [1000, 1100, 1200]
        }],
        "adjclose": [{"adjclose": [100.4, 101.4, 102.4]}]
      }
    }],
    "error": null
  }
}`

const quoteJSON = `{
  "quoteSummary": {
    "result": [{
      "price": {"marketCap": {"raw": 3000000000000}},
      "assetProfile": {"sector": "Technology"}
    }]
  }
}`

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.MarketData = config.MarketDataConfig{
		ChartBaseURL:   server.URL + "/chart",
		QuoteBaseURL:   server.URL + "/quote",
		ProfileBaseURL: server.URL + "/profile",
		HistoryPeriod:  "2y",
		RatePerSecond:  1000,
	}
	return NewClient(cfg, logger.NewNop())
}

func TestClientHistory(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/chart/AAPL")
		assert.Equal(t, "2y", r.URL.Query().Get("range"))
		fmt.Fprint(w, chartJSON)
	}))

	series, err := client.History(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, 100.5, series[0].Close)
	assert.Equal(t, 100.4, series[0].AdjClose)
	assert.Equal(t, int64(1000), series[0].Volume)
	assert.True(t, series[0].Date.Before(series[2].Date))
}

func TestClientHistoryProviderError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))

	_, err := client.History(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestClientProfile(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/quote/AAPL")
		fmt.Fprint(w, quoteJSON)
	}))

	profile, err := client.Profile(context.Background(), "AAPL")
	require.NoError(t, err)

	require.NotNil(t, profile.MarketCap)
	assert.Equal(t, 3e12, *profile.MarketCap)
	assert.Equal(t, "Technology", profile.Sector)
}

func TestClientProfileMissingMarketCap(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteSummary":{"result":[{"price":{},"assetProfile":{"sector":"Energy"}}]}}`)
	}))

	profile, err := client.Profile(context.Background(), "XOM")
	require.NoError(t, err)

	assert.Nil(t, profile.MarketCap)
	assert.Equal(t, "Energy", profile.Sector)
}

func TestClientScrapeSector(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/profile/AAPL/profile")
		fmt.Fprint(w, `<html><body><div data-field="sector"> Technology </div></body></html>`)
	}))

	sector, err := client.ScrapeSector(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Technology", sector)
}

func TestClientScrapeSectorNotFound(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>nothing here</p></body></html>`)
	}))

	_, err := client.ScrapeSector(context.Background(), "AAPL")
	require.Error(t, err)
}
