package core

import (
	"testing"
	"time"

	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/schema"
	"github.com/stretchr/testify/assert"
)

// staticPrices is a fixed in-memory price book for comparison tests.
type staticPrices map[string]contract.ModelPrice

func (p staticPrices) ModelPrice(model string) (contract.ModelPrice, bool) {
	price, ok := p[model]
	return price, ok
}

func modelRecord(id, model string, rating int, tokens int64, offset time.Duration) schema.EvaluationRecord {
	r := testRecord(id, rating, offset)
	r.Model = model
	r.InputTokens = i64Ptr(tokens)
	r.OutputTokens = i64Ptr(tokens)
	return r
}

func TestCompareModelsRanksByQuality(t *testing.T) {
	prices := staticPrices{
		"alpha": {InputPerToken: 0.00001, OutputPerToken: 0.00002},
		"beta":  {InputPerToken: 0.000001, OutputPerToken: 0.000002},
	}
	records := []schema.EvaluationRecord{
		modelRecord("a1", "alpha", 5, 1000, 0),
		modelRecord("a2", "alpha", 5, 1000, time.Hour),
		modelRecord("b1", "beta", 4, 1000, 2*time.Hour),
		modelRecord("b2", "beta", 4, 1000, 3*time.Hour),
	}

	report := CompareModels(records, prices)

	assert.Len(t, report.Groups, 2)
	assert.Equal(t, "alpha", report.Groups[0].Key)
	assert.Equal(t, "alpha", report.BestQuality)
	assert.Equal(t, "beta", report.BestCost)
	// Beta is 10x cheaper, so it wins on quality per dollar despite the
	// lower rating.
	assert.Equal(t, "beta", report.BestValue)
	assert.NotEmpty(t, report.Recommendations)
}

func TestCompareModelsZeroCostQualityPerDollar(t *testing.T) {
	// All token counts nil: cost stays 0 and quality-per-dollar must be 0,
	// never NaN or Inf.
	records := []schema.EvaluationRecord{
		testRecord("a", 5, 0),
		testRecord("b", 4, time.Hour),
	}
	for i := range records {
		records[i].Model = "alpha"
	}

	report := CompareModels(records, staticPrices{})

	assert.Len(t, report.Groups, 1)
	assert.Zero(t, report.Groups[0].AverageCost)
	assert.Zero(t, report.Groups[0].QualityPerDollar)
	assert.Empty(t, report.BestCost)
}

func TestCompareModelsUnknownModelKey(t *testing.T) {
	records := []schema.EvaluationRecord{testRecord("a", 3, 0)}

	report := CompareModels(records, staticPrices{})

	assert.Equal(t, "unknown", report.Groups[0].Key)
}

func TestCompareModelsEmpty(t *testing.T) {
	report := CompareModels(nil, staticPrices{})

	assert.Empty(t, report.Groups)
	assert.Empty(t, report.BestQuality)
	assert.Empty(t, report.Recommendations)
}

func TestGroupTrend(t *testing.T) {
	tests := []struct {
		name    string
		ratings []float64
		want    schema.TrendLabel
	}{
		{"too few points", []float64{5, 1, 5, 1}, schema.TrendStable},
		{"improving", []float64{3, 3, 3, 3, 3, 4, 4, 4, 4, 4}, schema.TrendImproving},
		{"declining", []float64{4, 4, 4, 4, 4, 3, 3, 3, 3, 3}, schema.TrendDeclining},
		{"flat", []float64{4, 4, 4, 4, 4, 4, 4, 4, 4, 4}, schema.TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, groupTrend(tt.ratings))
		})
	}
}

func toolRecord(id string, rating int, offset time.Duration, tools ...schema.ToolCall) schema.EvaluationRecord {
	r := testRecord(id, rating, offset)
	r.ToolCalls = tools
	return r
}

func TestAnalyzeToolImpact(t *testing.T) {
	var records []schema.EvaluationRecord
	// Baseline: 25 no-tool records rated 4.
	for i := range 25 {
		records = append(records, testRecord(
			"base"+string(rune('a'+i)), 4, time.Duration(i)*time.Minute))
	}
	// "search" lifts quality to 5 over 20 usages: impact 0.25, strong.
	for i := range 20 {
		records = append(records, toolRecord(
			"s"+string(rune('a'+i)), 5, time.Duration(30+i)*time.Minute,
			schema.ToolCall{Name: "search", Success: true}))
	}
	// "browse" sits at the baseline over 3 usages: weak.
	for i := range 3 {
		records = append(records, toolRecord(
			"b"+string(rune('a'+i)), 4, time.Duration(60+i)*time.Minute,
			schema.ToolCall{Name: "browse", Success: false}))
	}

	report := AnalyzeToolImpact(records)

	assert.Equal(t, 25, report.BaselineCount)
	assert.InDelta(t, 4.0, report.BaselineRating, 1e-9)
	assert.Len(t, report.Impacts, 2)

	search := report.Impacts[0]
	assert.Equal(t, "search", search.Tool)
	assert.Equal(t, 20, search.UsageCount)
	assert.InDelta(t, 0.25, search.Impact, 1e-9)
	assert.Equal(t, schema.SignificanceStrong, search.Significance)
	assert.InDelta(t, 1.0, search.SuccessRate, 1e-9)

	browse := report.Impacts[1]
	assert.Equal(t, schema.SignificanceWeak, browse.Significance)
	assert.Zero(t, browse.SuccessRate)
}

func TestAnalyzeToolImpactRecordCountsOncePerTool(t *testing.T) {
	records := []schema.EvaluationRecord{
		testRecord("base", 4, 0),
		toolRecord("multi", 5, time.Hour,
			schema.ToolCall{Name: "search", Success: true},
			schema.ToolCall{Name: "search", Success: false}),
	}

	report := AnalyzeToolImpact(records)

	assert.Len(t, report.Impacts, 1)
	assert.Equal(t, 1, report.Impacts[0].UsageCount)
	assert.InDelta(t, 0.5, report.Impacts[0].SuccessRate, 1e-9)
}

func TestImpactSignificanceThresholds(t *testing.T) {
	tests := []struct {
		impact float64
		usage  int
		want   schema.Significance
	}{
		{0.15, 20, schema.SignificanceStrong},
		{-0.20, 25, schema.SignificanceStrong},
		{0.15, 19, schema.SignificanceModerate},
		{0.08, 10, schema.SignificanceModerate},
		{0.08, 9, schema.SignificanceWeak},
		{0.07, 100, schema.SignificanceWeak},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, impactSignificance(tt.impact, tt.usage),
			"impact=%v usage=%d", tt.impact, tt.usage)
	}
}
