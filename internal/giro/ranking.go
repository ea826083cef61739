package giro

import (
	"sort"

	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/logger"
)

// Ranker orders consolidated records by turnover and labels each entry's
// week-over-week trend.
type Ranker struct {
	logger *logger.Logger
}

// NewRanker creates a new ranking engine.
func NewRanker(log *logger.Logger) *Ranker {
	return &Ranker{logger: log}
}

// Rank assigns 1-based positions by weekly average descending. The prior
// turnover is reconstructed by mirroring the last-week value around the
// current average: prior = current - (lastWeek - current).
func (r *Ranker) Rank(records []contracts.ConsolidatedClientRecord) []contracts.RankingEntry {
	sorted := make([]contracts.ConsolidatedClientRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WeeklyAverage > sorted[j].WeeklyAverage
	})

	entries := make([]contracts.RankingEntry, 0, len(sorted))
	for i, rec := range sorted {
		prior := rec.WeeklyAverage - (rec.LastWeek - rec.WeeklyAverage)
		variation := variationPercent(rec.WeeklyAverage, prior)

		entries = append(entries, contracts.RankingEntry{
			Position:         i + 1,
			ClientID:         rec.ClientID,
			ClientName:       rec.Name,
			CurrentTurnover:  rec.WeeklyAverage,
			PriorTurnover:    prior,
			Trend:            rankingTrend(variation),
			VariationPercent: variation,
			AchievementRatio: rec.AchievementRatio,
		})
	}

	r.logger.WithField("entries", len(entries)).Debug("ranking completed")

	return entries
}

// variationPercent is the change from prior to current, guarded against a
// zero baseline (a client with no prior period reads as unchanged).
func variationPercent(current, prior float64) float64 {
	if prior == 0 {
		return 0
	}
	return (current - prior) / prior * 100
}

func rankingTrend(variation float64) contracts.Trend {
	switch {
	case variation > contracts.RankingTrendBand:
		return contracts.TrendGrowth
	case variation < -contracts.RankingTrendBand:
		return contracts.TrendDecline
	default:
		return contracts.TrendStable
	}
}
