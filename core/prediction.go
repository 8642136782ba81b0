package core

import (
	"fmt"
	"math"
	"time"

	"github.com/qualens/qualens/core/stat"
	"github.com/qualens/qualens/schema"
)

// minPredictionRecords is the smallest snapshot worth fitting a model over.
const minPredictionRecords = 10

// featureWindow is the rolling window used for feature engineering.
const featureWindow = 5

// Forecast parameters.
const (
	confidenceHorizonDays = 60.0
	ratingFloor           = 1.0
	ratingCeiling         = 5.0
)

// Risk scoring: four binary flags with fixed weights summing to 100.
const (
	riskSlopeCutoff      = -0.05
	riskForecastCutoff   = 3.5
	riskErrorRateCutoff  = 0.20
	riskConfidenceCutoff = 0.6

	riskSlopeWeight      = 30.0
	riskForecastWeight   = 25.0
	riskErrorRateWeight  = 25.0
	riskConfidenceWeight = 20.0
)

// trailingTrendDays is the slope lookback used by the risk scorer.
const trailingTrendDays = 14

// PredictQuality engineers rolling-window features from the snapshot,
// trains a linear model, forecasts quality at each horizon, and derives a
// composite risk score. Fewer than minPredictionRecords records yields an
// explicit insufficient-data report.
func PredictQuality(points []schema.TimeSeriesPoint, model stat.Regressor, horizons []int, now time.Time) schema.PredictionReport {
	report := schema.PredictionReport{RecordsAnalyzed: len(points)}
	if len(points) < minPredictionRecords {
		report.InsufficientData = true
		report.Risk = schema.RiskScore{
			Level: schema.RiskLow,
			Factors: []string{fmt.Sprintf(
				"Not enough data to model quality: %d records found, %d required",
				len(points), minPredictionRecords)},
		}
		return report
	}

	features, targets := buildFeatureRows(points)
	model.Fit(features, targets)

	predicted := make([]float64, len(features))
	for i, row := range features {
		predicted[i] = model.Predict(row)
	}
	report.ModelAccuracy = stat.RSquared(targets, predicted)
	report.TrendSlope = trailingSlope(points, trailingTrendDays)
	report.RecentErrorRate = recentErrorRate(points, trailingTrendDays)

	for _, horizon := range horizons {
		report.Predictions = append(report.Predictions,
			forecastAt(points, model, report.ModelAccuracy, horizon, now))
	}

	sevenDay := forecastAt(points, model, report.ModelAccuracy, 7, now)
	report.Risk = scoreRisk(report, sevenDay)
	return report
}

// buildFeatureRows derives one training row per point from index 5 onward.
// Each row holds five features computed over the preceding 5-point window:
// normalized time position, rolling average rating, rolling error rate,
// rolling fallback rate and rolling average tool count.
func buildFeatureRows(points []schema.TimeSeriesPoint) (features [][]float64, targets []float64) {
	first := points[0].Timestamp
	last := points[len(points)-1].Timestamp
	span := last.Sub(first).Seconds()

	for i := featureWindow; i < len(points); i++ {
		window := points[i-featureWindow : i]
		var timePos float64
		if span > 0 {
			timePos = points[i].Timestamp.Sub(first).Seconds() / span
		}
		features = append(features, append([]float64{timePos}, rollingStats(window)...))
		targets = append(targets, points[i].Rating)
	}
	return features, targets
}

// rollingStats computes the four windowed features shared by training and
// forecasting: average rating, error rate, fallback rate, average tool count.
func rollingStats(window []schema.TimeSeriesPoint) []float64 {
	var ratingSum, toolSum float64
	var errors, fallbacks int
	for _, p := range window {
		ratingSum += p.Rating
		toolSum += float64(p.ToolCount)
		if p.HasError {
			errors++
		}
		if p.FallbackUsed {
			fallbacks++
		}
	}
	n := float64(len(window))
	return []float64{
		ratingSum / n,
		float64(errors) / n,
		float64(fallbacks) / n,
		toolSum / n,
	}
}

// forecastAt projects the most recent rolling window forward to
// now + horizon days. Confidence decays linearly to zero at a 60-day horizon
// and the prediction interval widens as model accuracy falls.
func forecastAt(points []schema.TimeSeriesPoint, model stat.Regressor, accuracy float64, horizon int, now time.Time) schema.QualityPrediction {
	first := points[0].Timestamp
	last := points[len(points)-1].Timestamp
	span := last.Sub(first).Seconds()

	future := now.AddDate(0, 0, horizon)
	var timePos float64
	if span > 0 {
		timePos = future.Sub(first).Seconds() / span
	}
	row := append([]float64{timePos}, rollingStats(points[len(points)-featureWindow:])...)
	predicted := stat.Clamp(model.Predict(row), ratingFloor, ratingCeiling)

	confidence := accuracy * math.Max(0, 1-float64(horizon)/confidenceHorizonDays)
	width := math.Sqrt((1 - accuracy) * 2)
	return schema.QualityPrediction{
		HorizonDays:     horizon,
		PredictedRating: predicted,
		Confidence:      confidence,
		IntervalLow:     stat.Clamp(predicted-width, ratingFloor, ratingCeiling),
		IntervalHigh:    stat.Clamp(predicted+width, ratingFloor, ratingCeiling),
	}
}

// trailingSlope fits a least-squares line over the ratings of the last
// `days` days of the snapshot.
func trailingSlope(points []schema.TimeSeriesPoint, days int) float64 {
	cutoff := points[len(points)-1].Timestamp.AddDate(0, 0, -days)
	var recent []float64
	for _, p := range points {
		if !p.Timestamp.Before(cutoff) {
			recent = append(recent, p.Rating)
		}
	}
	return stat.LinearTrendSlope(recent)
}

// recentErrorRate is the error fraction over the last `count` points.
func recentErrorRate(points []schema.TimeSeriesPoint, count int) float64 {
	if len(points) > count {
		points = points[len(points)-count:]
	}
	if len(points) == 0 {
		return 0
	}
	errors := 0
	for _, p := range points {
		if p.HasError {
			errors++
		}
	}
	return float64(errors) / float64(len(points))
}

// scoreRisk combines four binary signals into a 0-100 composite score.
func scoreRisk(report schema.PredictionReport, sevenDay schema.QualityPrediction) schema.RiskScore {
	risk := schema.RiskScore{}
	if report.TrendSlope < riskSlopeCutoff {
		risk.Score += riskSlopeWeight
		risk.Factors = append(risk.Factors, fmt.Sprintf(
			"Quality trend over the last %d days is declining (slope %.3f)", trailingTrendDays, report.TrendSlope))
		risk.Recommendations = append(risk.Recommendations,
			"Review recent prompt, model or data changes behind the downward trend")
	}
	if sevenDay.PredictedRating < riskForecastCutoff {
		risk.Score += riskForecastWeight
		risk.Factors = append(risk.Factors, fmt.Sprintf(
			"7-day forecast predicts a rating of %.2f", sevenDay.PredictedRating))
		risk.Recommendations = append(risk.Recommendations,
			"Plan a quality intervention before the forecast materializes")
	}
	if report.RecentErrorRate > riskErrorRateCutoff {
		risk.Score += riskErrorRateWeight
		risk.Factors = append(risk.Factors, fmt.Sprintf(
			"%.0f%% of the last %d interactions hit errors", report.RecentErrorRate*100, trailingTrendDays))
		risk.Recommendations = append(risk.Recommendations,
			"Triage the dominant error types from the error-pattern report")
	}
	if report.ModelAccuracy < riskConfidenceCutoff {
		risk.Score += riskConfidenceWeight
		risk.Factors = append(risk.Factors, fmt.Sprintf(
			"Model confidence is low (R-squared %.2f); treat forecasts as directional", report.ModelAccuracy))
		risk.Recommendations = append(risk.Recommendations,
			"Collect more evaluation records to stabilize the model")
	}
	risk.Level = schema.RiskLevelForScore(risk.Score)
	risk.Probability = risk.Score / 100
	return risk
}
