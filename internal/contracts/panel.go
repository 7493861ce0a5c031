package contracts

import (
	"sort"
	"time"
)

// Candle is one daily bar of a ticker's price history
type Candle struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adj_close"`
	Volume   int64     `json:"volume"`
}

// Series is a ticker's daily history in ascending date order
type Series []Candle

// AdjCloses returns the adjusted close column
func (s Series) AdjCloses() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.AdjClose
	}
	return out
}

// PricePanel is the read-only historical price panel for the whole universe.
// It is loaded once per run and never mutated by the pipeline.
type PricePanel struct {
	Series map[string]Series `json:"series"` // key: ticker
}

// NewPricePanel creates an empty panel
func NewPricePanel() *PricePanel {
	return &PricePanel{Series: make(map[string]Series)}
}

// Tickers returns the panel tickers in ascending order
func (p *PricePanel) Tickers() []string {
	tickers := make([]string, 0, len(p.Series))
	for t := range p.Series {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// Get returns the series for a ticker
func (p *PricePanel) Get(ticker string) (Series, bool) {
	s, ok := p.Series[ticker]
	return s, ok
}

// Count returns the number of tickers in the panel
func (p *PricePanel) Count() int {
	return len(p.Series)
}

// CompanyProfile holds the static metadata for one ticker.
// MarketCap is nil when the provider had no figure.
type CompanyProfile struct {
	MarketCap *float64 `json:"market_cap"`
	Sector    string   `json:"sector"`
}

// CompanyInfo maps ticker to its static metadata
type CompanyInfo map[string]CompanyProfile
