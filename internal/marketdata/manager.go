package marketdata

import (
	"context"
	"time"

	"github.com/quantward/momentum/internal/contracts"
	"github.com/quantward/momentum/pkg/config"
	"github.com/quantward/momentum/pkg/logger"
	"github.com/quantward/momentum/pkg/redis"
)

// Manager materializes the read-only pipeline inputs for a run date.
// Both the price panel and the company snapshot are cached per day so
// repeated runs on the same date hit the provider once.
type Manager struct {
	client      *Client
	cache       *redis.Cache
	universeCSV string
	logger      *logger.Logger
}

// NewManager creates a market data manager
func NewManager(cfg *config.Config, client *Client, cache *redis.Cache, log *logger.Logger) *Manager {
	return &Manager{
		client:      client,
		cache:       cache,
		universeCSV: cfg.MarketData.UniverseCSV,
		logger:      log,
	}
}

func dayKey(date time.Time) string {
	return date.Format("2006-01-02")
}

// Panel loads the full daily price panel for a run date. The panel is
// frozen once cached; tickers whose history cannot be fetched are
// skipped with a warning rather than failing the whole load.
func (m *Manager) Panel(ctx context.Context, date time.Time) (*contracts.PricePanel, error) {
	cacheKey := redis.PanelKey(dayKey(date))

	panel := contracts.NewPricePanel()
	if hit, err := m.cache.Get(ctx, cacheKey, panel); err != nil {
		m.logger.WithError(err).Warn("Panel cache read failed")
	} else if hit {
		m.logger.WithField("tickers", panel.Count()).Debug("Panel loaded from cache")
		return panel, nil
	}

	tickers, err := LoadUniverseTickers(m.universeCSV)
	if err != nil {
		return nil, err
	}

	m.logger.WithField("tickers", len(tickers)).Info("Fetching price histories")
	for _, ticker := range tickers {
		series, err := m.client.History(ctx, ticker)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			m.logger.WithField("ticker", ticker).WithError(err).Warn("History fetch failed, skipping")
			continue
		}
		panel.Series[ticker] = series
	}

	if err := m.cache.Set(ctx, cacheKey, panel, redis.TTLDaily); err != nil {
		m.logger.WithError(err).Warn("Panel cache write failed")
	}

	m.logger.WithField("tickers", panel.Count()).Info("Price panel ready")
	return panel, nil
}

// CompanyInfo loads market cap and sector for the given tickers. When
// the quote API omits the sector the profile page scrape fills it in;
// tickers that still lack data stay in the map with empty fields so
// the universe filter can log the drop.
func (m *Manager) CompanyInfo(ctx context.Context, date time.Time, tickers []string) (contracts.CompanyInfo, error) {
	cacheKey := redis.CompanyInfoKey(dayKey(date))

	info := make(contracts.CompanyInfo)
	if hit, err := m.cache.Get(ctx, cacheKey, &info); err != nil {
		m.logger.WithError(err).Warn("Company info cache read failed")
	} else if hit {
		return info, nil
	}

	m.logger.WithField("tickers", len(tickers)).Info("Fetching company profiles")
	for _, ticker := range tickers {
		profile, err := m.client.Profile(ctx, ticker)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			m.logger.WithField("ticker", ticker).WithError(err).Warn("Profile fetch failed")
			info[ticker] = contracts.CompanyProfile{}
			continue
		}

		if profile.Sector == "" {
			sector, err := m.client.ScrapeSector(ctx, ticker)
			if err != nil {
				m.logger.WithField("ticker", ticker).WithError(err).Debug("Sector scrape failed")
			} else {
				profile.Sector = sector
			}
		}
		info[ticker] = profile
	}

	if err := m.cache.Set(ctx, cacheKey, info, redis.TTLDaily); err != nil {
		m.logger.WithError(err).Warn("Company info cache write failed")
	}

	return info, nil
}
