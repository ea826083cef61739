package giro

import (
	"testing"

	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/logger"
)

func flatWeeks(n int, units int) []int {
	weeks := make([]int, n)
	for i := range weeks {
		weeks[i] = units
	}
	return weeks
}

func TestBuildWeeklySeries_Bucketing(t *testing.T) {
	// Three observed weeks, most recent first in the fixture.
	events := weeklyDeliveries(1, []int{30, 20, 10})

	points := BuildWeeklySeries(events, testNow)

	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	// Series comes back oldest first.
	wantTurnover := []float64{10, 20, 30}
	for i, want := range wantTurnover {
		if points[i].Turnover != want {
			t.Errorf("point %d turnover = %v, want %v", i, points[i].Turnover, want)
		}
	}
	if points[0].Label != "week_1" || points[2].Label != "week_3" {
		t.Errorf("labels = %q..%q, want week_1..week_3", points[0].Label, points[2].Label)
	}
}

func TestBuildWeeklySeries_ZeroFillsSilentWeeks(t *testing.T) {
	// Events three weeks apart leave a silent middle week.
	events := []contracts.DeliveryEvent{
		delivery(1, 17, 10), // oldest, week index 2
		delivery(1, 3, 30),  // most recent
	}

	points := BuildWeeklySeries(events, testNow)

	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	if points[1].Turnover != 0 {
		t.Errorf("silent week turnover = %v, want 0", points[1].Turnover)
	}
}

func TestBuildWeeklySeries_NoEvents(t *testing.T) {
	if points := BuildWeeklySeries(nil, testNow); points != nil {
		t.Errorf("expected nil series, got %d points", len(points))
	}
}

func TestAnalyze_FlatHistory(t *testing.T) {
	points := BuildWeeklySeries(weeklyDeliveries(1, flatWeeks(12, 100)), testNow)

	series := NewTemporalAnalyzer(logger.NewNop()).Analyze(1, points)

	if series == nil {
		t.Fatal("expected a series")
	}
	if series.FourWeekMovingAvg != 100 {
		t.Errorf("FourWeekMovingAvg = %v, want 100", series.FourWeekMovingAvg)
	}
	if series.OverallTrend != contracts.TrendStable {
		t.Errorf("OverallTrend = %v, want stable", series.OverallTrend)
	}
	if len(series.SeasonalityMap) != 12 {
		t.Errorf("SeasonalityMap has %d entries, want 12", len(series.SeasonalityMap))
	}
}

func TestAnalyze_GrowthTrend(t *testing.T) {
	// Recent six weeks at 80, older six at 50: +60% half-over-half.
	weeks := append(flatWeeks(6, 80), flatWeeks(6, 50)...)
	points := BuildWeeklySeries(weeklyDeliveries(1, weeks), testNow)

	series := NewTemporalAnalyzer(logger.NewNop()).Analyze(1, points)

	if series.OverallTrend != contracts.TrendGrowth {
		t.Errorf("OverallTrend = %v, want growth", series.OverallTrend)
	}
	if series.FourWeekMovingAvg != 80 {
		t.Errorf("FourWeekMovingAvg = %v, want 80", series.FourWeekMovingAvg)
	}
}

func TestAnalyze_DeclineTrend(t *testing.T) {
	weeks := append(flatWeeks(6, 40), flatWeeks(6, 90)...)
	points := BuildWeeklySeries(weeklyDeliveries(1, weeks), testNow)

	series := NewTemporalAnalyzer(logger.NewNop()).Analyze(1, points)

	if series.OverallTrend != contracts.TrendDecline {
		t.Errorf("OverallTrend = %v, want decline", series.OverallTrend)
	}
}

func TestAnalyze_ShortSeriesMovingAverage(t *testing.T) {
	// Three points only: the moving average adapts, no zero padding.
	points := BuildWeeklySeries(weeklyDeliveries(1, []int{30, 20, 10}), testNow)

	series := NewTemporalAnalyzer(logger.NewNop()).Analyze(1, points)

	if series.FourWeekMovingAvg != 20 {
		t.Errorf("FourWeekMovingAvg = %v, want 20", series.FourWeekMovingAvg)
	}
	if series.OverallTrend != contracts.TrendStable {
		t.Errorf("short series OverallTrend = %v, want stable", series.OverallTrend)
	}
}

func TestAnalyze_EmptyHistoryIsNil(t *testing.T) {
	if series := NewTemporalAnalyzer(logger.NewNop()).Analyze(1, nil); series != nil {
		t.Error("expected nil series for empty history")
	}
}

func TestAnalyze_ZeroBaselineIsStable(t *testing.T) {
	// Only the recent half has volume; a zero first-half baseline must not
	// divide by zero or read as explosive growth.
	weeks := append(flatWeeks(6, 70), flatWeeks(6, 0)...)
	points := BuildWeeklySeries(weeklyDeliveries(1, weeks), testNow)

	series := NewTemporalAnalyzer(logger.NewNop()).Analyze(1, points)

	if series == nil {
		t.Fatal("zero-unit events still qualify, expected a series")
	}
	if series.OverallTrend != contracts.TrendStable {
		t.Errorf("OverallTrend = %v, want stable", series.OverallTrend)
	}
}
