package giro

import (
	"context"
	"testing"
	"time"

	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/logger"
)

func newTestCache(store *fakeEventStore, ttl time.Duration) *AggregationCache {
	agg := NewAggregator(store, logger.NewNop())
	c := NewAggregationCache(agg, ttl)
	c.nowFn = func() time.Time { return testNow }
	return c
}

func TestAggregationCache_ReusesSnapshot(t *testing.T) {
	store := &fakeEventStore{events: []contracts.DeliveryEvent{delivery(1, 3, 10)}}
	c := newTestCache(store, 5*time.Minute)

	first := c.GetOrCompute(context.Background())
	second := c.GetOrCompute(context.Background())

	if store.scanCalls != 1 {
		t.Errorf("scanCalls = %d, want 1 (second call must hit cache)", store.scanCalls)
	}
	if first[1] != second[1] {
		t.Error("cached snapshot differs from original")
	}
}

func TestAggregationCache_ExpiryTriggersOneScan(t *testing.T) {
	store := &fakeEventStore{events: []contracts.DeliveryEvent{delivery(1, 3, 10)}}
	c := newTestCache(store, 5*time.Minute)

	c.GetOrCompute(context.Background())

	// Advance past the TTL: exactly one fresh scan.
	later := testNow.Add(6 * time.Minute)
	c.nowFn = func() time.Time { return later }

	c.GetOrCompute(context.Background())
	c.GetOrCompute(context.Background())

	if store.scanCalls != 2 {
		t.Errorf("scanCalls = %d, want 2 (one initial, one after expiry)", store.scanCalls)
	}
}

func TestAggregationCache_Invalidate(t *testing.T) {
	store := &fakeEventStore{events: []contracts.DeliveryEvent{delivery(1, 3, 10)}}
	c := newTestCache(store, 5*time.Minute)

	c.GetOrCompute(context.Background())
	c.Invalidate()
	c.GetOrCompute(context.Background())

	if store.scanCalls != 2 {
		t.Errorf("scanCalls = %d, want 2 after invalidation", store.scanCalls)
	}
}
