package contracts

import "time"

// UniverseRow is one ticker's state as it flows through the pipeline.
// Signal columns are zero until the stage that computes them has run;
// the Has* flags distinguish a computed zero from an absent value.
type UniverseRow struct {
	Ticker          string  `json:"ticker"`
	MarketCap       float64 `json:"market_cap"`
	Sector          string  `json:"sector"`
	Momentum        float64 `json:"momentum"`
	HasMomentum     bool    `json:"has_momentum"`
	PositivePeriods int     `json:"positive_periods"`
	Volatility      float64 `json:"volatility"`
	HasVolatility   bool    `json:"has_volatility"`
	Rank            int     `json:"rank"`
	Decile          int     `json:"decile"`
}

// UniverseTable is the working table each pipeline stage consumes and
// produces. Stages never mutate their input; each returns a new table.
// Dropped records why a ticker left the table, keyed by ticker.
type UniverseTable struct {
	Date    time.Time         `json:"date"`
	Rows    []UniverseRow     `json:"rows"`
	Dropped map[string]string `json:"dropped,omitempty"`
}

// NewUniverseTable creates an empty table for a run date
func NewUniverseTable(date time.Time) *UniverseTable {
	return &UniverseTable{
		Date:    date,
		Rows:    nil,
		Dropped: make(map[string]string),
	}
}

// Count returns the number of surviving rows
func (t *UniverseTable) Count() int {
	return len(t.Rows)
}

// Clone returns a deep copy with the rows slice replaced.
// Dropped entries carry forward so a run keeps its full drop history.
func (t *UniverseTable) Clone(rows []UniverseRow) *UniverseTable {
	dropped := make(map[string]string, len(t.Dropped))
	for k, v := range t.Dropped {
		dropped[k] = v
	}
	return &UniverseTable{
		Date:    t.Date,
		Rows:    rows,
		Dropped: dropped,
	}
}

// Tickers returns the surviving tickers in row order
func (t *UniverseTable) Tickers() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Ticker
	}
	return out
}

// Find returns the row for a ticker
func (t *UniverseTable) Find(ticker string) (UniverseRow, bool) {
	for _, r := range t.Rows {
		if r.Ticker == ticker {
			return r, true
		}
	}
	return UniverseRow{}, false
}
