package giro

import (
	"sort"

	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/logger"
)

// RegionalRollup groups consolidated records by delivery route.
type RegionalRollup struct {
	logger *logger.Logger
}

// NewRegionalRollup creates a new regional rollup.
func NewRegionalRollup(log *logger.Logger) *RegionalRollup {
	return &RegionalRollup{logger: log}
}

// Rollup produces one summary per route. Clients without a route land in
// the NoRouteBucket. Summaries come back ordered by average turnover
// descending, route name as tie-break, so the dashboard render is stable.
func (r *RegionalRollup) Rollup(records []contracts.ConsolidatedClientRecord) []contracts.RegionalSummary {
	groups := make(map[string][]contracts.ConsolidatedClientRecord)
	for _, rec := range records {
		route := rec.RouteName
		if route == "" {
			route = contracts.NoRouteBucket
		}
		groups[route] = append(groups[route], rec)
	}

	summaries := make([]contracts.RegionalSummary, 0, len(groups))
	for route, members := range groups {
		summaries = append(summaries, summarizeRoute(route, members))
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].AverageTurnover != summaries[j].AverageTurnover {
			return summaries[i].AverageTurnover > summaries[j].AverageTurnover
		}
		return summaries[i].RouteName < summaries[j].RouteName
	})

	r.logger.WithFields(map[string]interface{}{
		"routes":  len(summaries),
		"clients": len(records),
	}).Debug("regional rollup completed")

	return summaries
}

func summarizeRoute(route string, members []contracts.ConsolidatedClientRecord) contracts.RegionalSummary {
	s := contracts.RegionalSummary{
		RouteName:   route,
		ClientCount: len(members),
	}

	var sumTurnover, sumAchievement float64
	for _, m := range members {
		sumTurnover += m.WeeklyAverage
		sumAchievement += m.AchievementRatio
		s.ProjectedRevenue += m.ProjectedRevenue

		switch m.Performance {
		case contracts.PerformanceGreen:
			s.GreenCount++
		case contracts.PerformanceYellow:
			s.YellowCount++
		default:
			s.RedCount++
		}
	}

	if n := float64(len(members)); n > 0 {
		s.AverageTurnover = sumTurnover / n
		s.AverageAchievement = sumAchievement / n
	}

	s.OverallPerformance = dominantPerformance(s.GreenCount, s.YellowCount, s.RedCount)

	return s
}

// dominantPerformance picks the class with the most member clients. Ties
// resolve toward the worse class: green only wins outright, yellow must
// strictly beat red, red takes the rest.
func dominantPerformance(green, yellow, red int) contracts.PerformanceClass {
	if green > yellow && green > red {
		return contracts.PerformanceGreen
	}
	if yellow > red {
		return contracts.PerformanceYellow
	}
	return contracts.PerformanceRed
}
