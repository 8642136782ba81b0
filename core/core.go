// Package core has the analysis engine: trend, comparison, anomaly,
// prediction, sentiment, error-pattern and temporal analyzers over a
// snapshot of evaluation records.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/internal/outwriter"
	"github.com/qualens/qualens/schema"
)

// Env carries the external collaborators an analysis call needs: the record
// store queried once per call and the pricing book consulted for cost math.
type Env struct {
	Store  contract.RecordStore
	Prices contract.PriceBook
}

// ExecutorFunc defines the function signature for executing different
// analysis operations.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, env *Env) error

// ExecutorFor maps an operation to its entry point. The operation set is
// closed; ParseOperation rejects anything else before dispatch.
func ExecutorFor(op schema.Operation) (ExecutorFunc, error) {
	switch op {
	case schema.OpMetrics:
		return ExecuteMetrics, nil
	case schema.OpTrends:
		return ExecuteTrends, nil
	case schema.OpComparePeriods:
		return ExecuteComparePeriods, nil
	case schema.OpCompareModels:
		return ExecuteCompareModels, nil
	case schema.OpToolImpact:
		return ExecuteToolImpact, nil
	case schema.OpAnomalies:
		return ExecuteAnomalies, nil
	case schema.OpPredict:
		return ExecutePredict, nil
	case schema.OpRisk:
		return ExecuteRisk, nil
	case schema.OpSentiment:
		return ExecuteSentiment, nil
	case schema.OpCategories:
		return ExecuteCategories, nil
	case schema.OpErrorPatterns:
		return ExecuteErrorPatterns, nil
	case schema.OpTemporal:
		return ExecuteTemporal, nil
	default:
		return nil, fmt.Errorf("no executor for operation %q", op)
	}
}

// opConfig scopes the injected logger to one operation so every downstream
// debug line carries the operation key alongside the owner id.
func opConfig(cfg *contract.Config, op schema.Operation) *contract.Config {
	scoped := cfg.Clone()
	scoped.SetLogger(cfg.Log().With("operation", string(op)))
	return scoped
}

// ExecuteMetrics computes and prints the window summary for one owner.
func ExecuteMetrics(ctx context.Context, cfg *contract.Config, env *Env) error {
	cfg = opConfig(cfg, schema.OpMetrics)
	start := time.Now()
	metrics, err := GetWindowMetrics(ctx, cfg, env)
	if err != nil {
		return err
	}
	return outwriter.PrintMetrics(metrics, cfg, time.Since(start))
}

// ExecuteTrends classifies the window's daily quality trend.
func ExecuteTrends(ctx context.Context, cfg *contract.Config, env *Env) error {
	cfg = opConfig(cfg, schema.OpTrends)
	start := time.Now()
	report, err := GetQualityTrends(ctx, cfg, env)
	if err != nil {
		return err
	}
	return outwriter.PrintTrends(report, cfg, time.Since(start))
}

// ExecuteComparePeriods compares the window against the equal-length window
// immediately before it.
func ExecuteComparePeriods(ctx context.Context, cfg *contract.Config, env *Env) error {
	cfg = opConfig(cfg, schema.OpComparePeriods)
	start := time.Now()
	comparison, err := GetPeriodComparison(ctx, cfg, env)
	if err != nil {
		return err
	}
	return outwriter.PrintPeriodComparison(comparison, cfg, time.Since(start))
}

// ExecuteCompareModels ranks model groups by quality, cost and value.
func ExecuteCompareModels(ctx context.Context, cfg *contract.Config, env *Env) error {
	cfg = opConfig(cfg, schema.OpCompareModels)
	start := time.Now()
	report, err := GetModelComparison(ctx, cfg, env)
	if err != nil {
		return err
	}
	return outwriter.PrintModelComparison(report, cfg, time.Since(start))
}

// ExecuteToolImpact measures per-tool quality against the no-tool baseline.
func ExecuteToolImpact(ctx context.Context, cfg *contract.Config, env *Env) error {
	cfg = opConfig(cfg, schema.OpToolImpact)
	start := time.Now()
	report, err := GetToolImpact(ctx, cfg, env)
	if err != nil {
		return err
	}
	return outwriter.PrintToolImpact(report, cfg, time.Since(start))
}

// ExecuteAnomalies runs the four detection passes and prints the merged
// report.
func ExecuteAnomalies(ctx context.Context, cfg *contract.Config, env *Env) error {
	cfg = opConfig(cfg, schema.OpAnomalies)
	start := time.Now()
	report, err := GetAnomalyReport(ctx, cfg, env)
	if err != nil {
		return err
	}
	return outwriter.PrintAnomalies(report, cfg, time.Since(start))
}

// ExecutePredict trains the quality model and prints forecasts plus risk.
func ExecutePredict(ctx context.Context, cfg *contract.Config, env *Env) error {
	cfg = opConfig(cfg, schema.OpPredict)
	start := time.Now()
	report, err := GetPredictionReport(ctx, cfg, env)
	if err != nil {
		return err
	}
	return outwriter.PrintPrediction(report, cfg, time.Since(start))
}

// ExecuteRisk trains the same model as ExecutePredict but prints only the
// composite risk score.
func ExecuteRisk(ctx context.Context, cfg *contract.Config, env *Env) error {
	cfg = opConfig(cfg, schema.OpRisk)
	start := time.Now()
	report, err := GetPredictionReport(ctx, cfg, env)
	if err != nil {
		return err
	}
	return outwriter.PrintRisk(report, cfg, time.Since(start))
}

// ExecuteSentiment scores free-text feedback across the window.
func ExecuteSentiment(ctx context.Context, cfg *contract.Config, env *Env) error {
	cfg = opConfig(cfg, schema.OpSentiment)
	start := time.Now()
	report, err := GetSentimentReport(ctx, cfg, env)
	if err != nil {
		return err
	}
	return outwriter.PrintSentiment(report, cfg, time.Since(start))
}

// ExecuteCategories prints the feedback-category quality breakdown.
func ExecuteCategories(ctx context.Context, cfg *contract.Config, env *Env) error {
	cfg = opConfig(cfg, schema.OpCategories)
	start := time.Now()
	stats, err := GetCategoryStats(ctx, cfg, env)
	if err != nil {
		return err
	}
	return outwriter.PrintCategories(stats, cfg, time.Since(start))
}

// ExecuteErrorPatterns groups the window's failures by error type.
func ExecuteErrorPatterns(ctx context.Context, cfg *contract.Config, env *Env) error {
	cfg = opConfig(cfg, schema.OpErrorPatterns)
	start := time.Now()
	report, err := GetErrorPatternReport(ctx, cfg, env)
	if err != nil {
		return err
	}
	return outwriter.PrintErrorPatterns(report, cfg, time.Since(start))
}

// ExecuteTemporal breaks quality down by hour of day and day of week.
func ExecuteTemporal(ctx context.Context, cfg *contract.Config, env *Env) error {
	cfg = opConfig(cfg, schema.OpTemporal)
	start := time.Now()
	report, err := GetTemporalReport(ctx, cfg, env)
	if err != nil {
		return err
	}
	return outwriter.PrintTemporal(report, cfg, time.Since(start))
}
