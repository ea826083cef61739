package commands

import (
	"fmt"

	"github.com/VerticalAgents/mischa-os-sub004/internal/cache"
	"github.com/VerticalAgents/mischa-os-sub004/internal/giro"
	"github.com/VerticalAgents/mischa-os-sub004/internal/store/postgres"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/config"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/database"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/logger"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/redis"
)

// runtime bundles everything a command needs after bootstrap.
type runtime struct {
	cfg    *config.Config
	log    *logger.Logger
	db     *database.DB
	rdb    *redis.Client
	engine *giro.Engine
}

// close releases the runtime's connections.
func (r *runtime) close() {
	if r.rdb != nil {
		_ = r.rdb.Close()
	}
	if r.db != nil {
		r.db.Close()
	}
}

// bootstrap loads config and wires the analytics engine. Every command
// starts here so the cache layers are always injected, never global.
func bootstrap() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	rdb, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	eventStore := postgres.NewEventStore(db.Pool)
	referenceStore := postgres.NewReferenceStore(db.Pool)

	aggregator := giro.NewAggregator(eventStore, log)
	aggCache := giro.NewAggregationCache(aggregator, cfg.Cache.AggregationTTL)
	results := cache.New(cfg.Cache.ResultTTL)
	shared := redis.NewCache(rdb, "giro")

	engine := giro.NewEngine(
		eventStore,
		referenceStore,
		aggCache,
		results,
		shared,
		cfg.Cache.ResultTTL,
		log,
	)

	return &runtime{
		cfg:    cfg,
		log:    log,
		db:     db,
		rdb:    rdb,
		engine: engine,
	}, nil
}
