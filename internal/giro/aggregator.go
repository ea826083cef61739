package giro

import (
	"context"
	"math"
	"time"

	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/logger"
)

// Aggregator computes trailing-window weekly turnover per client in one
// pass over the delivery history. It always scans the full window: any
// result is therefore a superset-safe answer for whatever client set the
// caller had in mind.
type Aggregator struct {
	events contracts.EventStore
	logger *logger.Logger
}

// NewAggregator creates a new batch turnover aggregator.
func NewAggregator(events contracts.EventStore, log *logger.Logger) *Aggregator {
	return &Aggregator{
		events: events,
		logger: log,
	}
}

// clientAccumulator collects one client's figures during the scan.
type clientAccumulator struct {
	totalUnits int
	firstEvent time.Time
	// weekly[0] is the trailing 7 days, weekly[11] the oldest window week.
	weekly [contracts.MaxWeeks]float64
}

// Aggregate scans the event window ending at now and returns the per-client
// turnover mapping. Clients with no qualifying events are absent from the
// map; callers default to zero. A store read failure degrades to an empty
// mapping so that a portfolio-wide operation never fails on history alone.
func (a *Aggregator) Aggregate(ctx context.Context, now time.Time) map[int64]contracts.AggregatedTurnover {
	since := now.AddDate(0, 0, -contracts.WindowDays)

	events, err := a.events.DeliveryEvents(ctx, since)
	if err != nil {
		a.logger.WithError(err).Error("delivery event scan failed, returning empty turnover mapping")
		return map[int64]contracts.AggregatedTurnover{}
	}

	acc := make(map[int64]*clientAccumulator)
	for _, e := range events {
		if !e.Qualifies(now) {
			continue
		}

		c, ok := acc[e.ClientID]
		if !ok {
			c = &clientAccumulator{firstEvent: e.OccurredOn}
			acc[e.ClientID] = c
		}

		c.totalUnits += e.Units
		if e.OccurredOn.Before(c.firstEvent) {
			c.firstEvent = e.OccurredOn
		}
		c.weekly[weekIndex(e.OccurredOn, now)] += float64(e.Units)
	}

	result := make(map[int64]contracts.AggregatedTurnover, len(acc))
	for clientID, c := range acc {
		weeks := observedWeeks(c.firstEvent, now)
		avg := float64(c.totalUnits) / float64(weeks)

		result[clientID] = contracts.AggregatedTurnover{
			WeeklyAverage: avg,
			LastWeek:      c.weekly[0],
			StdDev:        stdDev(c.weekly[:weeks], avg),
		}
	}

	a.logger.WithFields(map[string]interface{}{
		"events":  len(events),
		"clients": len(result),
	}).Debug("turnover aggregation completed")

	return result
}

// observedWeeks returns the divisor for the weekly average: the number of
// weeks since the client's first qualifying event, rounded up, clamped to
// [1, MaxWeeks]. A client three days into its history divides by 1, not by
// a fraction; nobody divides by more than the window itself.
func observedWeeks(firstEvent, now time.Time) int {
	days := now.Sub(firstEvent).Hours() / 24
	weeks := int(math.Ceil(days / 7))
	if weeks < 1 {
		return 1
	}
	if weeks > contracts.MaxWeeks {
		return contracts.MaxWeeks
	}
	return weeks
}

// weekIndex buckets an event by how many whole weeks before now it
// occurred, clamped to the window.
func weekIndex(occurredOn, now time.Time) int {
	days := now.Sub(occurredOn).Hours() / 24
	idx := int(days / 7)
	if idx < 0 {
		return 0
	}
	if idx >= contracts.MaxWeeks {
		return contracts.MaxWeeks - 1
	}
	return idx
}

// stdDev is the population standard deviation of the weekly buckets around
// the given mean.
func stdDev(weekly []float64, mean float64) float64 {
	if len(weekly) == 0 {
		return 0
	}

	var sumSq float64
	for _, w := range weekly {
		d := w - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(weekly)))
}
