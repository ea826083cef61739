package giro

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/logger"
)

func TestAggregator_WeeklyAverage(t *testing.T) {
	store := &fakeEventStore{events: weeklyDeliveries(1, []int{100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100})}
	agg := NewAggregator(store, logger.NewNop())

	result := agg.Aggregate(context.Background(), testNow)

	got, ok := result[1]
	if !ok {
		t.Fatal("client 1 missing from aggregation")
	}
	// 12 weekly deliveries of 100 over the observed 12 weeks.
	if got.WeeklyAverage != 100 {
		t.Errorf("WeeklyAverage = %v, want 100", got.WeeklyAverage)
	}
	if got.LastWeek != 100 {
		t.Errorf("LastWeek = %v, want 100", got.LastWeek)
	}
	if got.StdDev != 0 {
		t.Errorf("StdDev = %v, want 0 for a flat history", got.StdDev)
	}
}

func TestAggregator_DivisorClampShortHistory(t *testing.T) {
	// First event 3 days ago: divisor is 1 week, not a fraction.
	store := &fakeEventStore{events: []contracts.DeliveryEvent{delivery(1, 3, 50)}}
	agg := NewAggregator(store, logger.NewNop())

	result := agg.Aggregate(context.Background(), testNow)

	if got := result[1].WeeklyAverage; got != 50 {
		t.Errorf("WeeklyAverage = %v, want 50 (divisor clamped to 1)", got)
	}
}

func TestAggregator_DivisorClampFullWindow(t *testing.T) {
	// First qualifying event sits at the very edge of the window: the
	// divisor caps at 12 weeks.
	store := &fakeEventStore{events: []contracts.DeliveryEvent{
		delivery(1, contracts.WindowDays, 60),
		delivery(1, 2, 60),
	}}
	agg := NewAggregator(store, logger.NewNop())

	result := agg.Aggregate(context.Background(), testNow)

	if got := result[1].WeeklyAverage; got != 10 {
		t.Errorf("WeeklyAverage = %v, want 120/12 = 10", got)
	}
}

func TestAggregator_WindowInvariant(t *testing.T) {
	// Events beyond the 84-day window must never move the average.
	inWindow := []contracts.DeliveryEvent{delivery(1, 10, 40)}
	agg := NewAggregator(&fakeEventStore{events: inWindow}, logger.NewNop())
	base := agg.Aggregate(context.Background(), testNow)[1]

	withOld := append([]contracts.DeliveryEvent{delivery(1, contracts.WindowDays+5, 9999)}, inWindow...)
	agg = NewAggregator(&fakeEventStore{events: withOld}, logger.NewNop())
	got := agg.Aggregate(context.Background(), testNow)[1]

	if got.WeeklyAverage != base.WeeklyAverage {
		t.Errorf("old event changed the average: %v != %v", got.WeeklyAverage, base.WeeklyAverage)
	}
}

func TestAggregator_ZeroEventsAbsent(t *testing.T) {
	store := &fakeEventStore{events: []contracts.DeliveryEvent{delivery(2, 5, 10)}}
	agg := NewAggregator(store, logger.NewNop())

	result := agg.Aggregate(context.Background(), testNow)

	if _, ok := result[1]; ok {
		t.Error("client with no events should be absent from the mapping")
	}
	if _, ok := result[2]; !ok {
		t.Error("client with events should be present")
	}
}

func TestAggregator_StoreFailureDegradesToEmpty(t *testing.T) {
	store := &fakeEventStore{err: errors.New("connection refused")}
	agg := NewAggregator(store, logger.NewNop())

	result := agg.Aggregate(context.Background(), testNow)

	if result == nil {
		t.Fatal("expected empty mapping, got nil")
	}
	if len(result) != 0 {
		t.Errorf("expected empty mapping, got %d entries", len(result))
	}
}

func TestAggregator_StdDev(t *testing.T) {
	// Two observed weeks: 30 units last week, 10 the week before.
	store := &fakeEventStore{events: []contracts.DeliveryEvent{
		delivery(1, 2, 30),
		delivery(1, 9, 10),
	}}
	agg := NewAggregator(store, logger.NewNop())

	got := agg.Aggregate(context.Background(), testNow)[1]

	if got.WeeklyAverage != 20 {
		t.Fatalf("WeeklyAverage = %v, want 20", got.WeeklyAverage)
	}
	if math.Abs(got.StdDev-10) > 1e-9 {
		t.Errorf("StdDev = %v, want 10", got.StdDev)
	}
}

func TestObservedWeeks(t *testing.T) {
	tests := []struct {
		name    string
		daysAgo int
		want    int
	}{
		{"same day", 0, 1},
		{"three days", 3, 1},
		{"exactly one week", 7, 1},
		{"eight days", 8, 2},
		{"full window", contracts.WindowDays, contracts.MaxWeeks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := testNow.AddDate(0, 0, -tt.daysAgo)
			if got := observedWeeks(first, testNow); got != tt.want {
				t.Errorf("observedWeeks(-%dd) = %d, want %d", tt.daysAgo, got, tt.want)
			}
		})
	}
}
