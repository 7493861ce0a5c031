package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quantward/momentum/internal/contracts"
	"github.com/quantward/momentum/pkg/database"
	"github.com/quantward/momentum/pkg/logger"
)

// RunSummary is the persisted record of one pipeline run
type RunSummary struct {
	ID         int64               `json:"id"`
	Strategy   contracts.Strategy  `json:"strategy"`
	Timeframe  contracts.Timeframe `json:"timeframe"`
	RunDate    time.Time           `json:"run_date"`
	ConfigHash string              `json:"config_hash"`
	Survivors  int                 `json:"survivors"`
	Longs      []string            `json:"longs"`
	Shorts     []string            `json:"shorts"`
	DurationMS int64               `json:"duration_ms"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Repository persists run summaries in PostgreSQL
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a run summary repository
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{db: db, logger: log}
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS run_summaries (
	id          BIGSERIAL PRIMARY KEY,
	strategy    TEXT NOT NULL,
	timeframe   TEXT NOT NULL,
	run_date    DATE NOT NULL,
	config_hash TEXT NOT NULL,
	survivors   INT NOT NULL,
	longs       JSONB NOT NULL,
	shorts      JSONB NOT NULL,
	duration_ms BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (strategy, timeframe, run_date)
)`

// EnsureSchema creates the backing table if it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create run_summaries table: %w", err)
	}
	return nil
}

const insertSQL = `
INSERT INTO run_summaries (strategy, timeframe, run_date, config_hash, survivors, longs, shorts, duration_ms)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (strategy, timeframe, run_date)
DO UPDATE SET config_hash = EXCLUDED.config_hash,
	survivors   = EXCLUDED.survivors,
	longs       = EXCLUDED.longs,
	shorts      = EXCLUDED.shorts,
	duration_ms = EXCLUDED.duration_ms,
	created_at  = now()`

// SaveSummary upserts the summary for a run; rerunning a day
// overwrites the earlier record
func (r *Repository) SaveSummary(ctx context.Context, report *contracts.Report, configHash string) error {
	longs, err := json.Marshal(report.Portfolio.Longs)
	if err != nil {
		return err
	}
	shorts, err := json.Marshal(report.Portfolio.Shorts)
	if err != nil {
		return err
	}

	_, err = r.db.Pool.Exec(ctx, insertSQL,
		string(report.Strategy), string(report.Timeframe), report.Date,
		configHash, report.Table.Count(), longs, shorts,
		report.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("save run summary %s/%s: %w", report.Strategy, report.Timeframe, err)
	}

	r.logger.WithFields(map[string]interface{}{
		"strategy":  report.Strategy,
		"timeframe": report.Timeframe,
		"survivors": report.Table.Count(),
	}).Debug("Run summary saved")
	return nil
}

const latestSQL = `
SELECT id, strategy, timeframe, run_date, config_hash, survivors, longs, shorts, duration_ms, created_at
FROM run_summaries
ORDER BY run_date DESC, created_at DESC
LIMIT $1`

// Latest returns the most recent run summaries
func (r *Repository) Latest(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := r.db.Pool.Query(ctx, latestSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query latest runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		var longs, shorts []byte
		if err := rows.Scan(&s.ID, &s.Strategy, &s.Timeframe, &s.RunDate, &s.ConfigHash,
			&s.Survivors, &longs, &shorts, &s.DurationMS, &s.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(longs, &s.Longs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(shorts, &s.Shorts); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
