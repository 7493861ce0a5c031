package commands

import (
	"fmt"

	"github.com/quantward/momentum/internal/marketdata"
	"github.com/quantward/momentum/internal/strategyconfig"
	"github.com/quantward/momentum/pkg/config"
	"github.com/quantward/momentum/pkg/database"
	"github.com/quantward/momentum/pkg/logger"
	"github.com/quantward/momentum/pkg/redis"
)

// app bundles the shared dependencies every command starts from
type app struct {
	cfg          *config.Config
	log          *logger.Logger
	db           *database.DB
	redisClient  *redis.Client
	cache        *redis.Cache
	strategy     *strategyconfig.Config
	strategyHash string
	data         *marketdata.Manager
}

// newApp loads configuration and wires the dependency graph. The
// database connection is optional so read-only commands can run
// without one.
func newApp(needDB bool) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	strategy, _, err := strategyconfig.Load(strategyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load strategy config %s: %w", strategyFile, err)
	}
	hash, err := strategyconfig.Hash(strategy)
	if err != nil {
		return nil, nil, fmt.Errorf("hash strategy config: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"strategy_id": strategy.Meta.StrategyID,
		"config_hash": hash[:12],
	}).Info("Strategy config loaded")

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "momentum")

	a := &app{
		cfg:          cfg,
		log:          log,
		redisClient:  redisClient,
		cache:        cache,
		strategy:     strategy,
		strategyHash: hash,
	}
	a.data = marketdata.NewManager(cfg, marketdata.NewClient(cfg, log), cache, log)

	if needDB {
		db, err := database.New(cfg)
		if err != nil {
			_ = redisClient.Close()
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		a.db = db
	}

	cleanup := func() {
		if a.db != nil {
			a.db.Close()
		}
		_ = a.redisClient.Close()
	}
	return a, cleanup, nil
}
