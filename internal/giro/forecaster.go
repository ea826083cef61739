package giro

import (
	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/logger"
)

// Trend scaling factors applied to the moving average when projecting the
// next period.
const (
	growthFactor  = 1.1
	declineFactor = 0.9
)

// Forecaster combines a client's temporal series with its turnover variance
// into a next-period prediction. This is the deliberately small heuristic a
// weekly replenishment business needs, not a forecasting library.
type Forecaster struct {
	logger *logger.Logger
}

// NewForecaster creates a new forecaster.
func NewForecaster(log *logger.Logger) *Forecaster {
	return &Forecaster{logger: log}
}

// Forecast predicts the next period from the series' four-week moving
// average, scaled by the overall trend, bounded by one standard deviation.
// A nil series yields nil: no history, no forecast.
func (f *Forecaster) Forecast(series *contracts.TemporalSeries, record contracts.ConsolidatedClientRecord) *contracts.ForecastResult {
	if series == nil || len(series.Entries) == 0 {
		return nil
	}

	predicted := series.FourWeekMovingAvg
	switch series.OverallTrend {
	case contracts.TrendGrowth:
		predicted *= growthFactor
	case contracts.TrendDecline:
		predicted *= declineFactor
	}

	low := predicted - record.StdDev
	if low < 0 {
		low = 0
	}

	result := &contracts.ForecastResult{
		ClientID:            series.ClientID,
		PredictedNextPeriod: predicted,
		ConfidenceInterval: contracts.ConfidenceInterval{
			Min: low,
			Max: predicted + record.StdDev,
		},
		SeasonalFactors:   series.SeasonalityMap,
		TargetProbability: targetProbability(predicted, record.WeeklyTarget),
	}

	f.logger.WithFields(map[string]interface{}{
		"client_id": series.ClientID,
		"predicted": predicted,
		"trend":     series.OverallTrend,
	}).Debug("forecast generated")

	return result
}

// targetProbability estimates the chance of meeting the weekly target,
// capped at 100. No target means no meaningful probability.
func targetProbability(predicted, target float64) float64 {
	if target <= 0 {
		return 0
	}

	p := predicted / target * 100
	if p > 100 {
		return 100
	}
	return p
}
