package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/quantward/momentum/internal/contracts"
	"github.com/quantward/momentum/pkg/config"
	"github.com/quantward/momentum/pkg/httputil"
	"github.com/quantward/momentum/pkg/logger"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Client fetches price history and company metadata from the market
// data provider. A shared rate limiter paces every outbound request
// so bulk loads stay under the provider's throttle.
type Client struct {
	http       *httputil.Client
	limiter    *rate.Limiter
	chartURL   string
	quoteURL   string
	profileURL string
	period     string
	logger     *logger.Logger
}

// NewClient creates a market data client
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		http:       httputil.New(log),
		limiter:    rate.NewLimiter(rate.Limit(cfg.MarketData.RatePerSecond), 1),
		chartURL:   strings.TrimRight(cfg.MarketData.ChartBaseURL, "/"),
		quoteURL:   strings.TrimRight(cfg.MarketData.QuoteBaseURL, "/"),
		profileURL: strings.TrimRight(cfg.MarketData.ProfileBaseURL, "/"),
		period:     cfg.MarketData.HistoryPeriod,
		logger:     log,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History fetches the daily candle series for a ticker over the
// configured period
func (c *Client) History(ctx context.Context, ticker string) (contracts.Series, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s?range=%s&interval=1d&events=div%%2Csplit",
		c.chartURL, url.PathEscape(ticker), url.QueryEscape(c.period))

	resp, err := c.http.GetWithHeaders(ctx, endpoint, map[string]string{"User-Agent": userAgent})
	if err != nil {
		return nil, fmt.Errorf("chart request for %s failed: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart request for %s returned status %d", ticker, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("chart response for %s unparsable: %w", ticker, err)
	}
	if parsed.Chart.Error != nil {
		return nil, fmt.Errorf("chart error for %s: %s", ticker, parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart response for %s is empty", ticker)
	}

	result := parsed.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart response for %s has no quote block", ticker)
	}
	quote := result.Indicators.Quote[0]

	var adj []float64
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}

	series := make(contracts.Series, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == 0 {
			continue
		}
		candle := contracts.Candle{
			Date:     time.Unix(ts, 0).UTC(),
			Open:     at(quote.Open, i),
			High:     at(quote.High, i),
			Low:      at(quote.Low, i),
			Close:    quote.Close[i],
			AdjClose: quote.Close[i],
		}
		if i < len(quote.Volume) {
			candle.Volume = quote.Volume[i]
		}
		if i < len(adj) && adj[i] != 0 {
			candle.AdjClose = adj[i]
		}
		series = append(series, candle)
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("no usable candles for %s", ticker)
	}
	return series, nil
}

func at(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				MarketCap struct {
					Raw float64 `json:"raw"`
				} `json:"marketCap"`
			} `json:"price"`
			AssetProfile struct {
				Sector string `json:"sector"`
			} `json:"assetProfile"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// Profile fetches market cap and sector for a ticker. A missing
// market cap comes back as a nil pointer, not an error; the universe
// filter drops such tickers with a logged reason.
func (c *Client) Profile(ctx context.Context, ticker string) (contracts.CompanyProfile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return contracts.CompanyProfile{}, err
	}

	endpoint := fmt.Sprintf("%s/%s?modules=price%%2CassetProfile", c.quoteURL, url.PathEscape(ticker))

	resp, err := c.http.GetWithHeaders(ctx, endpoint, map[string]string{"User-Agent": userAgent})
	if err != nil {
		return contracts.CompanyProfile{}, fmt.Errorf("quote request for %s failed: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return contracts.CompanyProfile{}, fmt.Errorf("quote request for %s returned status %d", ticker, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return contracts.CompanyProfile{}, err
	}

	var parsed quoteSummaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return contracts.CompanyProfile{}, fmt.Errorf("quote response for %s unparsable: %w", ticker, err)
	}
	if len(parsed.QuoteSummary.Result) == 0 {
		return contracts.CompanyProfile{}, fmt.Errorf("quote response for %s is empty", ticker)
	}

	result := parsed.QuoteSummary.Result[0]
	profile := contracts.CompanyProfile{Sector: result.AssetProfile.Sector}
	if raw := result.Price.MarketCap.Raw; raw > 0 {
		profile.MarketCap = &raw
	}
	return profile, nil
}

// ScrapeSector pulls the sector off the provider's profile page. Used
// as a fallback when the quote API omits the asset profile module.
func (c *Client) ScrapeSector(ctx context.Context, ticker string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/%s/profile", c.profileURL, url.PathEscape(ticker))

	resp, err := c.http.GetWithHeaders(ctx, endpoint, map[string]string{"User-Agent": userAgent})
	if err != nil {
		return "", fmt.Errorf("profile request for %s failed: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("profile request for %s returned status %d", ticker, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("profile page for %s unparsable: %w", ticker, err)
	}

	sector := strings.TrimSpace(doc.Find("[data-field=sector]").First().Text())
	if sector == "" {
		sector = strings.TrimSpace(doc.Find("span.sector").First().Text())
	}
	if sector == "" {
		return "", fmt.Errorf("no sector found on profile page for %s", ticker)
	}
	return sector, nil
}
