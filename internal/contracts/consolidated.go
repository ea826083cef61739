package contracts

// PerformanceClass is the traffic-light classification of a client's
// achievement ratio.
type PerformanceClass string

const (
	PerformanceGreen  PerformanceClass = "green"
	PerformanceYellow PerformanceClass = "yellow"
	PerformanceRed    PerformanceClass = "red"
)

// Achievement ratio thresholds (percent of weekly target).
const (
	GreenThreshold  = 90.0
	YellowThreshold = 70.0
)

// ClassifyAchievement maps an achievement ratio to its performance class.
func ClassifyAchievement(ratio float64) PerformanceClass {
	switch {
	case ratio >= GreenThreshold:
		return PerformanceGreen
	case ratio >= YellowThreshold:
		return PerformanceYellow
	default:
		return PerformanceRed
	}
}

// AchievementRatio computes actual turnover as a percentage of the weekly
// target. A zero or absent target yields 0, never a division error.
func AchievementRatio(weeklyAverage, weeklyTarget float64) float64 {
	if weeklyTarget <= 0 {
		return 0
	}
	return weeklyAverage / weeklyTarget * 100
}

// ConsolidatedClientRecord joins the client reference attributes with the
// aggregated turnover figures and the metrics derived from them. Records
// are recomputed on every consolidation run and live only inside cache
// entries.
type ConsolidatedClientRecord struct {
	ClientReference

	WeeklyAverage    float64          `json:"weekly_average_units"`
	LastWeek         float64          `json:"last_week_units"`
	StdDev           float64          `json:"std_dev"`
	AchievementRatio float64          `json:"achievement_ratio"`
	Performance      PerformanceClass `json:"performance_class"`
	ProjectedRevenue float64          `json:"projected_revenue"`
}

// NewConsolidatedRecord builds the consolidated record for one client.
// A client absent from the turnover mapping defaults to zero everywhere.
func NewConsolidatedRecord(ref ClientReference, agg AggregatedTurnover) ConsolidatedClientRecord {
	ratio := AchievementRatio(agg.WeeklyAverage, ref.WeeklyTarget)
	return ConsolidatedClientRecord{
		ClientReference:  ref,
		WeeklyAverage:    agg.WeeklyAverage,
		LastWeek:         agg.LastWeek,
		StdDev:           agg.StdDev,
		AchievementRatio: ratio,
		Performance:      ClassifyAchievement(ratio),
		ProjectedRevenue: agg.WeeklyAverage * ref.UnitPrice,
	}
}
