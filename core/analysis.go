package core

import (
	"context"
	"time"

	"github.com/qualens/qualens/core/stat"
	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/schema"
)

// The Get* functions fetch the record window once and run one analyzer over
// the snapshot. They back both the CLI executors and the MCP tool handlers.

// GetWindowMetrics returns the window summary for one owner.
func GetWindowMetrics(ctx context.Context, cfg *contract.Config, env *Env) (schema.WindowMetrics, error) {
	records, err := fetchRecords(ctx, cfg, env.Store)
	if err != nil {
		return schema.WindowMetrics{}, err
	}
	return ComputeWindowMetrics(records, cfg.StartTime, cfg.EndTime), nil
}

// GetQualityTrends returns the daily trend classification for the window.
func GetQualityTrends(ctx context.Context, cfg *contract.Config, env *Env) (schema.TrendReport, error) {
	records, err := fetchRecords(ctx, cfg, env.Store)
	if err != nil {
		return schema.TrendReport{}, err
	}
	return ComputeQualityTrends(records, cfg.TrendMinDays, cfg.TrendThreshold), nil
}

// GetPeriodComparison fetches the current and preceding windows and returns
// their deltas.
func GetPeriodComparison(ctx context.Context, cfg *contract.Config, env *Env) (schema.PeriodComparison, error) {
	records, err := fetchRecords(ctx, cfg, env.Store)
	if err != nil {
		return schema.PeriodComparison{}, err
	}
	prevStart, prevEnd := cfg.PreviousWindow()
	prevCfg := cfg.CloneWithTimeWindow(prevStart, prevEnd)
	prevRecords, err := fetchRecords(ctx, prevCfg, env.Store)
	if err != nil {
		return schema.PeriodComparison{}, err
	}
	return ComparePeriods(
		ComputeWindowMetrics(records, cfg.StartTime, cfg.EndTime),
		ComputeWindowMetrics(prevRecords, prevStart, prevEnd)), nil
}

// GetModelComparison returns the model group rankings for the window.
func GetModelComparison(ctx context.Context, cfg *contract.Config, env *Env) (schema.ModelComparisonReport, error) {
	records, err := fetchRecords(ctx, cfg, env.Store)
	if err != nil {
		return schema.ModelComparisonReport{}, err
	}
	return CompareModels(records, env.Prices), nil
}

// GetToolImpact returns the per-tool quality effect report.
func GetToolImpact(ctx context.Context, cfg *contract.Config, env *Env) (schema.ToolImpactReport, error) {
	records, err := fetchRecords(ctx, cfg, env.Store)
	if err != nil {
		return schema.ToolImpactReport{}, err
	}
	return AnalyzeToolImpact(records), nil
}

// GetAnomalyReport returns the merged anomaly report for the window.
func GetAnomalyReport(ctx context.Context, cfg *contract.Config, env *Env) (schema.AnomalyReport, error) {
	records, err := fetchRecords(ctx, cfg, env.Store)
	if err != nil {
		return schema.AnomalyReport{}, err
	}
	return DetectAnomalies(BuildPoints(records), cfg.StartTime, cfg.EndTime), nil
}

// GetPredictionReport trains the quality model over the window and returns
// forecasts plus the derived risk score.
func GetPredictionReport(ctx context.Context, cfg *contract.Config, env *Env) (schema.PredictionReport, error) {
	records, err := fetchRecords(ctx, cfg, env.Store)
	if err != nil {
		return schema.PredictionReport{}, err
	}
	return PredictQuality(BuildPoints(records), stat.NewGradientDescent(), cfg.Horizons, time.Now()), nil
}

// GetSentimentReport scores free-text feedback across the window.
func GetSentimentReport(ctx context.Context, cfg *contract.Config, env *Env) (schema.SentimentReport, error) {
	records, err := fetchRecords(ctx, cfg, env.Store)
	if err != nil {
		return schema.SentimentReport{}, err
	}
	return AnalyzeSentiment(records, cfg.Detail), nil
}

// GetCategoryStats returns the feedback-category quality breakdown.
func GetCategoryStats(ctx context.Context, cfg *contract.Config, env *Env) ([]schema.FeedbackCategoryStat, error) {
	records, err := fetchRecords(ctx, cfg, env.Store)
	if err != nil {
		return nil, err
	}
	return AnalyzeCategories(records), nil
}

// GetErrorPatternReport groups the window's failures by error type.
func GetErrorPatternReport(ctx context.Context, cfg *contract.Config, env *Env) (schema.ErrorPatternReport, error) {
	records, err := fetchRecords(ctx, cfg, env.Store)
	if err != nil {
		return schema.ErrorPatternReport{}, err
	}
	return AnalyzeErrorPatterns(records), nil
}

// GetTemporalReport breaks quality down by hour of day and day of week.
func GetTemporalReport(ctx context.Context, cfg *contract.Config, env *Env) (schema.TemporalReport, error) {
	records, err := fetchRecords(ctx, cfg, env.Store)
	if err != nil {
		return schema.TemporalReport{}, err
	}
	return AnalyzeTemporal(records), nil
}
