package simbook

import (
	"context"

	"github.com/quantward/momentum/internal/contracts"
	"github.com/quantward/momentum/pkg/logger"
)

// Manager wraps a BookStore with first-run initialization: a book
// that has never been saved starts with the configured cash and no
// positions.
type Manager struct {
	store       contracts.BookStore
	initialCash float64
	logger      *logger.Logger
}

// NewManager creates a book manager
func NewManager(store contracts.BookStore, initialCash float64, log *logger.Logger) *Manager {
	return &Manager{store: store, initialCash: initialCash, logger: log}
}

// LoadOrInit returns the persisted book for a strategy and timeframe,
// or a fresh book with the starting cash when none exists
func (m *Manager) LoadOrInit(ctx context.Context, strategy contracts.Strategy, timeframe contracts.Timeframe) (contracts.BookState, error) {
	state, found, err := m.store.Load(ctx, strategy, timeframe)
	if err != nil {
		return contracts.BookState{}, err
	}
	if !found {
		m.logger.WithFields(map[string]interface{}{
			"strategy":  strategy,
			"timeframe": timeframe,
			"cash":      m.initialCash,
		}).Info("Initializing new book")
		return contracts.NewBookState(m.initialCash), nil
	}
	return state, nil
}

// Save persists the book
func (m *Manager) Save(ctx context.Context, strategy contracts.Strategy, timeframe contracts.Timeframe, state contracts.BookState) error {
	return m.store.Save(ctx, strategy, timeframe, state)
}
