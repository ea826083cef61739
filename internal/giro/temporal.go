package giro

import (
	"fmt"
	"time"

	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/logger"
)

// TemporalAnalyzer derives the moving average, trend classification and
// seasonality map from one client's weekly history.
type TemporalAnalyzer struct {
	logger *logger.Logger
}

// NewTemporalAnalyzer creates a new temporal analyzer.
func NewTemporalAnalyzer(log *logger.Logger) *TemporalAnalyzer {
	return &TemporalAnalyzer{logger: log}
}

// BuildWeeklySeries buckets a client's delivery events into weekly turnover
// points, oldest first, starting at the week of the first qualifying event.
// Silent weeks inside the observed span are zero-filled. At most MaxWeeks
// points come back; no qualifying events means an empty series.
func BuildWeeklySeries(events []contracts.DeliveryEvent, now time.Time) []contracts.WeekPoint {
	var (
		buckets [contracts.MaxWeeks]float64
		first   time.Time
		any     bool
	)

	for _, e := range events {
		if !e.Qualifies(now) {
			continue
		}
		if !any || e.OccurredOn.Before(first) {
			first = e.OccurredOn
			any = true
		}
		buckets[weekIndex(e.OccurredOn, now)] += float64(e.Units)
	}

	if !any {
		return nil
	}

	weeks := observedWeeks(first, now)
	points := make([]contracts.WeekPoint, 0, weeks)
	for i := 0; i < weeks; i++ {
		// buckets[0] is the most recent week; entry 0 must be the oldest.
		points = append(points, contracts.WeekPoint{
			Label:    fmt.Sprintf("week_%d", i+1),
			Turnover: buckets[weeks-1-i],
		})
	}

	return points
}

// Analyze computes the temporal series for one client from its ordered
// weekly points. An empty history yields nil: "no data", not an error.
func (t *TemporalAnalyzer) Analyze(clientID int64, points []contracts.WeekPoint) *contracts.TemporalSeries {
	if len(points) == 0 {
		t.logger.WithField("client_id", clientID).Debug("no weekly history, skipping temporal analysis")
		return nil
	}

	if len(points) > contracts.MaxWeeks {
		points = points[len(points)-contracts.MaxWeeks:]
	}

	seasonality := make(map[string]float64, len(points))
	for _, p := range points {
		seasonality[p.Label] = p.Turnover
	}

	return &contracts.TemporalSeries{
		ClientID:          clientID,
		Entries:           points,
		FourWeekMovingAvg: fourWeekMovingAverage(points),
		OverallTrend:      seriesTrend(points),
		SeasonalityMap:    seasonality,
	}
}

// fourWeekMovingAverage is the mean of the last four points, or of however
// many exist when the history is shorter. No padding.
func fourWeekMovingAverage(points []contracts.WeekPoint) float64 {
	n := len(points)
	if n == 0 {
		return 0
	}

	start := n - 4
	if start < 0 {
		start = 0
	}

	var sum float64
	for _, p := range points[start:] {
		sum += p.Turnover
	}
	return sum / float64(n-start)
}

// seriesTrend compares the mean of the first half of the window against the
// second half. A short series with no second half, or a zero first-half
// baseline, reads as stable rather than dividing by zero.
func seriesTrend(points []contracts.WeekPoint) contracts.Trend {
	half := contracts.MaxWeeks / 2
	if len(points) <= half {
		return contracts.TrendStable
	}

	firstMean := meanTurnover(points[:half])
	secondMean := meanTurnover(points[half:])

	if firstMean == 0 {
		return contracts.TrendStable
	}

	change := (secondMean - firstMean) / firstMean * 100
	switch {
	case change > contracts.SeriesTrendBand:
		return contracts.TrendGrowth
	case change < -contracts.SeriesTrendBand:
		return contracts.TrendDecline
	default:
		return contracts.TrendStable
	}
}

func meanTurnover(points []contracts.WeekPoint) float64 {
	if len(points) == 0 {
		return 0
	}

	var sum float64
	for _, p := range points {
		sum += p.Turnover
	}
	return sum / float64(len(points))
}
