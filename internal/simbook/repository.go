package simbook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quantward/momentum/internal/contracts"
	"github.com/quantward/momentum/pkg/database"
	"github.com/quantward/momentum/pkg/logger"
)

// Repository persists simulated book state in PostgreSQL, one row per
// strategy and timeframe
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a book repository
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{db: db, logger: log}
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS sim_books (
	strategy   TEXT NOT NULL,
	timeframe  TEXT NOT NULL,
	cash       DOUBLE PRECISION NOT NULL,
	positions  JSONB NOT NULL DEFAULT '{}'::jsonb,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (strategy, timeframe)
)`

// EnsureSchema creates the backing table if it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create sim_books table: %w", err)
	}
	return nil
}

const loadSQL = `
SELECT cash, positions
FROM sim_books
WHERE strategy = $1 AND timeframe = $2`

// Load reads the persisted book for a strategy and timeframe. The
// second return value is false when no book has been saved yet.
func (r *Repository) Load(ctx context.Context, strategy contracts.Strategy, timeframe contracts.Timeframe) (contracts.BookState, bool, error) {
	var cash float64
	var positionsJSON []byte

	err := r.db.Pool.QueryRow(ctx, loadSQL, string(strategy), string(timeframe)).Scan(&cash, &positionsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return contracts.BookState{}, false, nil
	}
	if err != nil {
		return contracts.BookState{}, false, fmt.Errorf("load book %s/%s: %w", strategy, timeframe, err)
	}

	positions := make(map[string]int64)
	if err := json.Unmarshal(positionsJSON, &positions); err != nil {
		return contracts.BookState{}, false, fmt.Errorf("book positions for %s/%s unparsable: %w", strategy, timeframe, err)
	}

	return contracts.BookState{Cash: cash, Positions: positions}, true, nil
}

const saveSQL = `
INSERT INTO sim_books (strategy, timeframe, cash, positions, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (strategy, timeframe)
DO UPDATE SET cash = EXCLUDED.cash, positions = EXCLUDED.positions, updated_at = now()`

// Save upserts the book for a strategy and timeframe
func (r *Repository) Save(ctx context.Context, strategy contracts.Strategy, timeframe contracts.Timeframe, state contracts.BookState) error {
	positions := state.Positions
	if positions == nil {
		positions = map[string]int64{}
	}
	positionsJSON, err := json.Marshal(positions)
	if err != nil {
		return fmt.Errorf("marshal book positions: %w", err)
	}

	if _, err := r.db.Pool.Exec(ctx, saveSQL, string(strategy), string(timeframe), state.Cash, positionsJSON); err != nil {
		return fmt.Errorf("save book %s/%s: %w", strategy, timeframe, err)
	}

	r.logger.WithFields(map[string]interface{}{
		"strategy":  strategy,
		"timeframe": timeframe,
		"cash":      state.Cash,
		"positions": len(positions),
	}).Debug("Book saved")
	return nil
}
