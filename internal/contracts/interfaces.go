package contracts

import (
	"context"
	"time"
)

// PanelSource provides the daily price panel for a run date
type PanelSource interface {
	Panel(ctx context.Context, date time.Time) (*PricePanel, error)
}

// CompanySource provides static company metadata for a run date
type CompanySource interface {
	CompanyInfo(ctx context.Context, date time.Time, tickers []string) (CompanyInfo, error)
}

// BookStore persists simulated book state per strategy and timeframe
type BookStore interface {
	Load(ctx context.Context, strategy Strategy, timeframe Timeframe) (BookState, bool, error)
	Save(ctx context.Context, strategy Strategy, timeframe Timeframe, state BookState) error
}

// ReportWriter persists a finished run report
type ReportWriter interface {
	Write(ctx context.Context, report *Report) error
}
