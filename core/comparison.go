package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/qualens/qualens/core/stat"
	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/schema"
)

// groupTrendMinCount is the smallest group for which a first-half vs
// second-half trend label is meaningful.
const groupTrendMinCount = 10

// groupTrendThreshold is the relative change needed to leave "stable".
const groupTrendThreshold = 0.10

// Tool impact significance cutoffs.
const (
	strongImpact     = 0.15
	strongMinUsage   = 20
	moderateImpact   = 0.08
	moderateMinUsage = 10
)

// groupAccum accumulates per-group statistics during a comparison pass.
type groupAccum struct {
	key        string
	count      int
	rated      int
	ratingSum  float64
	evaluated  int
	successes  int
	costSum    float64
	latencySum float64
	latencyN   int
	// Time-ordered ratings for the two-half trend split. Records arrive in
	// creation order from the store, so no re-sort is needed here.
	ratings []float64
}

func (a *groupAccum) add(r schema.EvaluationRecord, cost float64) {
	a.count++
	if r.Rating >= 1 && r.Rating <= 5 {
		a.rated++
		a.ratingSum += float64(r.Rating)
		a.ratings = append(a.ratings, float64(r.Rating))
	}
	if r.Success != nil {
		a.evaluated++
		if *r.Success {
			a.successes++
		}
	}
	a.costSum += cost
	if r.LatencyMs != nil {
		a.latencySum += float64(*r.LatencyMs)
		a.latencyN++
	}
}

func (a *groupAccum) performance() schema.GroupPerformance {
	g := schema.GroupPerformance{
		Key:        a.key,
		UsageCount: a.count,
		Trend:      groupTrend(a.ratings),
	}
	if a.rated > 0 {
		g.AverageRating = a.ratingSum / float64(a.rated)
	}
	if a.evaluated > 0 {
		g.SuccessRate = float64(a.successes) / float64(a.evaluated)
	}
	if a.count > 0 {
		g.AverageCost = a.costSum / float64(a.count)
	}
	if a.latencyN > 0 {
		g.AverageLatencyMs = a.latencySum / float64(a.latencyN)
	}
	if g.AverageCost > 0 {
		g.QualityPerDollar = g.AverageRating / g.AverageCost
	}
	return g
}

// groupTrend classifies a group's rating trajectory by comparing the first
// and second halves of its time-ordered ratings.
func groupTrend(ratings []float64) schema.TrendLabel {
	if len(ratings) < groupTrendMinCount {
		return schema.TrendStable
	}
	half := len(ratings) / 2
	first := stat.Mean(ratings[:half])
	second := stat.Mean(ratings[half:])
	if first == 0 {
		return schema.TrendStable
	}
	change := (second - first) / first
	switch {
	case change >= groupTrendThreshold:
		return schema.TrendImproving
	case change <= -groupTrendThreshold:
		return schema.TrendDeclining
	default:
		return schema.TrendStable
	}
}

// CompareModels groups records by model identifier and ranks the groups by
// quality, cost and quality-per-dollar value.
func CompareModels(records []schema.EvaluationRecord, prices contract.PriceBook) schema.ModelComparisonReport {
	accums := make(map[string]*groupAccum)
	order := make([]string, 0)
	for _, r := range records {
		key := r.Model
		if key == "" {
			key = "unknown"
		}
		a, ok := accums[key]
		if !ok {
			a = &groupAccum{key: key}
			accums[key] = a
			order = append(order, key)
		}
		a.add(r, contract.RecordCost(&r, prices))
	}

	groups := make([]schema.GroupPerformance, 0, len(order))
	for _, key := range order {
		groups = append(groups, accums[key].performance())
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].AverageRating > groups[j].AverageRating
	})

	report := schema.ModelComparisonReport{Groups: groups}
	if len(groups) == 0 {
		return report
	}

	report.BestQuality = groups[0].Key
	lowestCost := math.MaxFloat64
	highestValue := 0.0
	for _, g := range groups {
		if g.AverageCost > 0 && g.AverageCost < lowestCost {
			lowestCost = g.AverageCost
			report.BestCost = g.Key
		}
		if g.QualityPerDollar > highestValue {
			highestValue = g.QualityPerDollar
			report.BestValue = g.Key
		}
	}
	report.Recommendations = modelRecommendations(report)
	return report
}

func modelRecommendations(report schema.ModelComparisonReport) []string {
	recs := make([]string, 0, 4)
	top := report.Groups[0]
	recs = append(recs, fmt.Sprintf(
		"%s leads on quality with an average rating of %.2f across %d interactions",
		top.Key, top.AverageRating, top.UsageCount))
	if report.BestValue != "" && report.BestValue != top.Key {
		recs = append(recs, fmt.Sprintf("%s delivers the best quality per dollar", report.BestValue))
	}
	for _, g := range report.Groups {
		switch g.Trend {
		case schema.TrendDeclining:
			recs = append(recs, fmt.Sprintf("%s quality is declining; review recent interactions", g.Key))
		case schema.TrendImproving:
			recs = append(recs, fmt.Sprintf("%s quality is improving", g.Key))
		}
	}
	return recs
}

// AnalyzeToolImpact measures each tool's quality effect against a baseline
// of records that invoked no tools at all. A record contributes to every
// distinct tool named in its tool-call list.
func AnalyzeToolImpact(records []schema.EvaluationRecord) schema.ToolImpactReport {
	type toolAccum struct {
		count     int
		rated     int
		ratingSum float64
		calls     int
		successes int
	}
	accums := make(map[string]*toolAccum)
	order := make([]string, 0)

	var baselineSum float64
	var baselineRated, baselineCount int
	for _, r := range records {
		if len(r.ToolCalls) == 0 {
			baselineCount++
			if r.Rating >= 1 && r.Rating <= 5 {
				baselineRated++
				baselineSum += float64(r.Rating)
			}
			continue
		}
		seen := make(map[string]bool, len(r.ToolCalls))
		for _, tc := range r.ToolCalls {
			a, ok := accums[tc.Name]
			if !ok {
				a = &toolAccum{}
				accums[tc.Name] = a
				order = append(order, tc.Name)
			}
			a.calls++
			if tc.Success {
				a.successes++
			}
			if seen[tc.Name] {
				continue
			}
			seen[tc.Name] = true
			a.count++
			if r.Rating >= 1 && r.Rating <= 5 {
				a.rated++
				a.ratingSum += float64(r.Rating)
			}
		}
	}

	report := schema.ToolImpactReport{BaselineCount: baselineCount}
	if baselineRated > 0 {
		report.BaselineRating = baselineSum / float64(baselineRated)
	}

	impacts := make([]schema.ToolImpact, 0, len(order))
	for _, name := range order {
		a := accums[name]
		impact := schema.ToolImpact{Tool: name, UsageCount: a.count}
		if a.rated > 0 {
			impact.AverageRating = a.ratingSum / float64(a.rated)
		}
		if a.calls > 0 {
			impact.SuccessRate = float64(a.successes) / float64(a.calls)
		}
		if report.BaselineRating > 0 {
			impact.Impact = (impact.AverageRating - report.BaselineRating) / report.BaselineRating
		}
		impact.Significance = impactSignificance(impact.Impact, impact.UsageCount)
		impacts = append(impacts, impact)
	}
	sort.SliceStable(impacts, func(i, j int) bool {
		return math.Abs(impacts[i].Impact) > math.Abs(impacts[j].Impact)
	})
	report.Impacts = impacts
	report.Recommendations = toolRecommendations(report)
	return report
}

func impactSignificance(impact float64, usage int) schema.Significance {
	abs := math.Abs(impact)
	switch {
	case abs >= strongImpact && usage >= strongMinUsage:
		return schema.SignificanceStrong
	case abs >= moderateImpact && usage >= moderateMinUsage:
		return schema.SignificanceModerate
	default:
		return schema.SignificanceWeak
	}
}

func toolRecommendations(report schema.ToolImpactReport) []string {
	recs := make([]string, 0, len(report.Impacts))
	for _, imp := range report.Impacts {
		if imp.Significance == schema.SignificanceWeak {
			continue
		}
		if imp.Impact > 0 {
			recs = append(recs, fmt.Sprintf(
				"%s lifts quality %.0f%% above the no-tool baseline (%s signal)",
				imp.Tool, imp.Impact*100, imp.Significance))
		} else {
			recs = append(recs, fmt.Sprintf(
				"%s drags quality %.0f%% below the no-tool baseline (%s signal); investigate its failure modes",
				imp.Tool, math.Abs(imp.Impact)*100, imp.Significance))
		}
	}
	if len(recs) == 0 && len(report.Impacts) > 0 {
		recs = append(recs, "No tool shows a significant quality effect yet; collect more tool-using interactions")
	}
	return recs
}
