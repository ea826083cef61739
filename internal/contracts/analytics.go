package contracts

// Trend labels week-over-week movement of a client's turnover.
type Trend string

const (
	TrendGrowth  Trend = "growth"
	TrendDecline Trend = "decline"
	TrendStable  Trend = "stable"
)

// Variation thresholds, in percent.
const (
	// RankingTrendBand: variation beyond ±5% flips a ranking entry out of stable.
	RankingTrendBand = 5.0
	// SeriesTrendBand: half-over-half change beyond ±10% flips a series out of stable.
	SeriesTrendBand = 10.0
)

// RankingEntry is one row of the turnover ranking.
type RankingEntry struct {
	Position         int     `json:"position"`
	ClientID         int64   `json:"client_id"`
	ClientName       string  `json:"client_name"`
	CurrentTurnover  float64 `json:"current_turnover"`
	PriorTurnover    float64 `json:"reconstructed_prior_turnover"`
	Trend            Trend   `json:"trend"`
	VariationPercent float64 `json:"variation_percent"`
	AchievementRatio float64 `json:"achievement_ratio"`
}

// NoRouteBucket groups clients without an assigned delivery route.
const NoRouteBucket = "Sem rota"

// RegionalSummary aggregates the consolidated records of one delivery route.
type RegionalSummary struct {
	RouteName          string           `json:"route_name"`
	ClientCount        int              `json:"client_count"`
	AverageTurnover    float64          `json:"average_turnover"`
	AverageAchievement float64          `json:"average_achievement"`
	ProjectedRevenue   float64          `json:"projected_revenue"`
	GreenCount         int              `json:"green_count"`
	YellowCount        int              `json:"yellow_count"`
	RedCount           int              `json:"red_count"`
	OverallPerformance PerformanceClass `json:"overall_performance"`
}

// WeekPoint is one weekly snapshot of a client's turnover.
type WeekPoint struct {
	Label    string  `json:"week_label"`
	Turnover float64 `json:"turnover"`
}

// TemporalSeries is the per-client weekly history with its derived trend
// figures. Entries are ordered oldest first, at most MaxWeeks of them.
type TemporalSeries struct {
	ClientID          int64       `json:"client_id"`
	Entries           []WeekPoint `json:"entries"`
	FourWeekMovingAvg float64     `json:"four_week_moving_average"`
	OverallTrend      Trend       `json:"overall_trend"`
	// SeasonalityMap keys each entry by its 1-based week label. This is
	// the raw per-week turnover relabeled, not a seasonal decomposition;
	// kept as-is because dashboard consumers depend on the shape.
	SeasonalityMap map[string]float64 `json:"seasonality_map"`
}

// ConfidenceInterval bounds a prediction by one standard deviation.
type ConfidenceInterval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ForecastResult is the short-horizon prediction for one client.
type ForecastResult struct {
	ClientID            int64              `json:"client_id"`
	PredictedNextPeriod float64            `json:"predicted_next_period"`
	ConfidenceInterval  ConfidenceInterval `json:"confidence_interval"`
	SeasonalFactors     map[string]float64 `json:"seasonal_factors"`
	TargetProbability   float64            `json:"target_achievement_probability"`
}

// Overview is the whole-portfolio summary for the dashboard header cards.
type Overview struct {
	TotalClients            int                      `json:"total_clients"`
	OverallAverageTurnover  float64                  `json:"overall_average_turnover"`
	OverallAchievementRate  float64                  `json:"overall_achievement_rate"`
	PerformanceDistribution map[PerformanceClass]int `json:"performance_distribution"`
	TotalProjectedRevenue   float64                  `json:"total_projected_revenue"`
}
