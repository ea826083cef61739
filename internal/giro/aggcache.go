package giro

import (
	"context"
	"sync"
	"time"

	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
)

// turnoverSnapshot is one immutable aggregation result plus its birth time.
// Refreshing means swapping in a whole new snapshot, never editing one.
type turnoverSnapshot struct {
	turnover  map[int64]contracts.AggregatedTurnover
	createdAt time.Time
}

// AggregationCache is the single shared slot holding the most recent batch
// aggregation. It is deliberately not keyed by client set: the aggregator
// computes over the full window, so any live snapshot answers any request.
//
// Concurrent misses may each run a redundant scan; the scan is idempotent
// and side-effect-free, so the race is accepted rather than serialized.
type AggregationCache struct {
	mu         sync.RWMutex
	slot       *turnoverSnapshot
	ttl        time.Duration
	aggregator *Aggregator

	nowFn func() time.Time
}

// NewAggregationCache creates the shared aggregation cache.
func NewAggregationCache(aggregator *Aggregator, ttl time.Duration) *AggregationCache {
	return &AggregationCache{
		ttl:        ttl,
		aggregator: aggregator,
		nowFn:      time.Now,
	}
}

// GetOrCompute returns the cached turnover mapping if the slot is still
// valid, otherwise recomputes via the aggregator and replaces the slot.
func (c *AggregationCache) GetOrCompute(ctx context.Context) map[int64]contracts.AggregatedTurnover {
	now := c.nowFn()

	c.mu.RLock()
	slot := c.slot
	c.mu.RUnlock()

	if slot != nil && now.Sub(slot.createdAt) < c.ttl {
		return slot.turnover
	}

	// Miss: compute outside the lock, then replace the slot.
	turnover := c.aggregator.Aggregate(ctx, now)

	c.mu.Lock()
	c.slot = &turnoverSnapshot{turnover: turnover, createdAt: now}
	c.mu.Unlock()

	return turnover
}

// Invalidate drops the slot so the next read recomputes.
func (c *AggregationCache) Invalidate() {
	c.mu.Lock()
	c.slot = nil
	c.mu.Unlock()
}
