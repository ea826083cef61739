package giro

import (
	"context"
	"fmt"
	"time"

	"github.com/VerticalAgents/mischa-os-sub004/internal/cache"
	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/logger"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/redis"
)

// Operation names used as result-cache key prefixes.
const (
	opConsolidated = "consolidated"
	opRanking      = "ranking"
	opRegional     = "regional"
	opTemporal     = "temporal"
	opForecast     = "forecast"
	opOverview     = "overview"
)

// Engine is the request/response facade over the turnover analytics core.
// Both cache layers are injected, never process-wide singletons; the host
// owns their lifecycle.
type Engine struct {
	events  contracts.EventStore
	clients contracts.ReferenceStore

	consolidator *Consolidator
	ranker       *Ranker
	rollup       *RegionalRollup
	temporal     *TemporalAnalyzer
	forecaster   *Forecaster

	aggCache  *AggregationCache
	results   *cache.ResultCache
	shared    *redis.Cache
	resultTTL time.Duration

	logger *logger.Logger
	nowFn  func() time.Time
}

// NewEngine wires the analytics core. The shared cache is the optional
// Redis second level; pass a cache over a disabled client to run purely
// in-memory.
func NewEngine(
	events contracts.EventStore,
	clients contracts.ReferenceStore,
	aggCache *AggregationCache,
	results *cache.ResultCache,
	shared *redis.Cache,
	resultTTL time.Duration,
	log *logger.Logger,
) *Engine {
	return &Engine{
		events:       events,
		clients:      clients,
		consolidator: NewConsolidator(log),
		ranker:       NewRanker(log),
		rollup:       NewRegionalRollup(log),
		temporal:     NewTemporalAnalyzer(log),
		forecaster:   NewForecaster(log),
		aggCache:     aggCache,
		results:      results,
		shared:       shared,
		resultTTL:    resultTTL,
		logger:       log,
		nowFn:        time.Now,
	}
}

// GetConsolidated returns one consolidated record per client matching the
// filter, sorted by turnover descending. A reference-store failure
// propagates: a record set silently computed over zero clients must not
// masquerade as complete.
func (e *Engine) GetConsolidated(ctx context.Context, filter contracts.Filter) ([]contracts.ConsolidatedClientRecord, error) {
	key := cache.Key(opConsolidated, filter.CacheKey())

	if v, ok := e.results.Get(key); ok {
		return v.([]contracts.ConsolidatedClientRecord), nil
	}
	var cached []contracts.ConsolidatedClientRecord
	if found, _ := e.shared.Get(ctx, key, &cached); found {
		e.results.Set(key, cached)
		return cached, nil
	}

	refs, err := e.clients.Clients(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load client references: %w", err)
	}

	turnover := e.aggCache.GetOrCompute(ctx)
	records := e.consolidator.Consolidate(refs, turnover)

	e.memoize(ctx, key, records)
	return records, nil
}

// GetRanking returns the turnover ranking for the filtered portfolio.
func (e *Engine) GetRanking(ctx context.Context, filter contracts.Filter) ([]contracts.RankingEntry, error) {
	key := cache.Key(opRanking, filter.CacheKey())

	if v, ok := e.results.Get(key); ok {
		return v.([]contracts.RankingEntry), nil
	}
	var cached []contracts.RankingEntry
	if found, _ := e.shared.Get(ctx, key, &cached); found {
		e.results.Set(key, cached)
		return cached, nil
	}

	records, err := e.GetConsolidated(ctx, filter)
	if err != nil {
		return nil, err
	}

	entries := e.ranker.Rank(records)
	e.memoize(ctx, key, entries)
	return entries, nil
}

// GetRegional returns one summary per delivery route.
func (e *Engine) GetRegional(ctx context.Context, filter contracts.Filter) ([]contracts.RegionalSummary, error) {
	key := cache.Key(opRegional, filter.CacheKey())

	if v, ok := e.results.Get(key); ok {
		return v.([]contracts.RegionalSummary), nil
	}
	var cached []contracts.RegionalSummary
	if found, _ := e.shared.Get(ctx, key, &cached); found {
		e.results.Set(key, cached)
		return cached, nil
	}

	records, err := e.GetConsolidated(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := e.rollup.Rollup(records)
	e.memoize(ctx, key, summaries)
	return summaries, nil
}

// GetTemporal returns the weekly series for one client, or (nil, nil) when
// the client has no delivery history in the window.
func (e *Engine) GetTemporal(ctx context.Context, clientID int64) (*contracts.TemporalSeries, error) {
	key := cache.Key(opTemporal, fmt.Sprintf("client=%d", clientID))

	if v, ok := e.results.Get(key); ok {
		return v.(*contracts.TemporalSeries), nil
	}
	var cached contracts.TemporalSeries
	if found, _ := e.shared.Get(ctx, key, &cached); found {
		e.results.Set(key, &cached)
		return &cached, nil
	}

	now := e.nowFn()
	since := now.AddDate(0, 0, -contracts.WindowDays)

	events, err := e.events.ClientEvents(ctx, clientID, since)
	if err != nil {
		return nil, fmt.Errorf("load client events: %w", err)
	}

	series := e.temporal.Analyze(clientID, BuildWeeklySeries(events, now))
	if series == nil {
		return nil, nil
	}

	e.memoize(ctx, key, series)
	return series, nil
}

// GetForecast returns the next-period prediction for one client, or
// (nil, nil) when there is no history to predict from.
func (e *Engine) GetForecast(ctx context.Context, clientID int64) (*contracts.ForecastResult, error) {
	key := cache.Key(opForecast, fmt.Sprintf("client=%d", clientID))

	if v, ok := e.results.Get(key); ok {
		return v.(*contracts.ForecastResult), nil
	}
	var cached contracts.ForecastResult
	if found, _ := e.shared.Get(ctx, key, &cached); found {
		e.results.Set(key, &cached)
		return &cached, nil
	}

	series, err := e.GetTemporal(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, nil
	}

	record, err := e.findRecord(ctx, clientID)
	if err != nil {
		return nil, err
	}

	result := e.forecaster.Forecast(series, record)
	if result == nil {
		return nil, nil
	}

	e.memoize(ctx, key, result)
	return result, nil
}

// GetOverview returns the whole-portfolio summary for the filter.
func (e *Engine) GetOverview(ctx context.Context, filter contracts.Filter) (*contracts.Overview, error) {
	key := cache.Key(opOverview, filter.CacheKey())

	if v, ok := e.results.Get(key); ok {
		return v.(*contracts.Overview), nil
	}
	var cached contracts.Overview
	if found, _ := e.shared.Get(ctx, key, &cached); found {
		e.results.Set(key, &cached)
		return &cached, nil
	}

	records, err := e.GetConsolidated(ctx, filter)
	if err != nil {
		return nil, err
	}

	overview := buildOverview(records)
	e.memoize(ctx, key, overview)
	return overview, nil
}

// RefreshSnapshot triggers the upstream consolidated dataset rebuild and
// drops both cache layers so the next read sees fresh data.
func (e *Engine) RefreshSnapshot(ctx context.Context) error {
	if err := e.clients.RefreshSnapshot(ctx); err != nil {
		return fmt.Errorf("refresh consolidated snapshot: %w", err)
	}

	e.InvalidateCaches()
	e.logger.Info("consolidated snapshot refreshed, caches dropped")
	return nil
}

// InvalidateCaches drops the local cache layers. Shared Redis entries are
// left to age out on their own TTL; other instances tolerate that bounded
// staleness.
func (e *Engine) InvalidateCaches() {
	e.aggCache.Invalidate()
	e.results.Clear()
}

// memoize writes to the in-memory layer and through to the shared layer.
// A shared-cache write failure only costs reuse, never the request.
func (e *Engine) memoize(ctx context.Context, key string, value interface{}) {
	e.results.Set(key, value)
	if err := e.shared.Set(ctx, key, value, e.resultTTL); err != nil {
		e.logger.WithError(err).Warn("shared cache write failed")
	}
}

// findRecord locates one client's consolidated record in the unfiltered
// portfolio view.
func (e *Engine) findRecord(ctx context.Context, clientID int64) (contracts.ConsolidatedClientRecord, error) {
	records, err := e.GetConsolidated(ctx, contracts.Filter{})
	if err != nil {
		return contracts.ConsolidatedClientRecord{}, err
	}

	for _, rec := range records {
		if rec.ClientID == clientID {
			return rec, nil
		}
	}

	// No reference row: forecast proceeds with zero target and variance.
	return contracts.ConsolidatedClientRecord{
		ClientReference: contracts.ClientReference{ClientID: clientID},
	}, nil
}

func buildOverview(records []contracts.ConsolidatedClientRecord) *contracts.Overview {
	o := &contracts.Overview{
		TotalClients: len(records),
		PerformanceDistribution: map[contracts.PerformanceClass]int{
			contracts.PerformanceGreen:  0,
			contracts.PerformanceYellow: 0,
			contracts.PerformanceRed:    0,
		},
	}

	var sumTurnover, sumAchievement float64
	for _, rec := range records {
		sumTurnover += rec.WeeklyAverage
		sumAchievement += rec.AchievementRatio
		o.TotalProjectedRevenue += rec.ProjectedRevenue
		o.PerformanceDistribution[rec.Performance]++
	}

	if n := float64(len(records)); n > 0 {
		o.OverallAverageTurnover = sumTurnover / n
		o.OverallAchievementRate = sumAchievement / n
	}

	return o
}
