package core

import (
	"fmt"
	"sort"

	"github.com/qualens/qualens/schema"
)

// Error pattern severity by share of the window's total errors.
const (
	errorShareCritical = 0.50
	errorShareHigh     = 0.25
	errorShareMedium   = 0.10
)

// AnalyzeErrorPatterns groups the window's failures by error type and ranks
// the patterns by frequency.
func AnalyzeErrorPatterns(records []schema.EvaluationRecord) schema.ErrorPatternReport {
	type patternAccum struct {
		count     int
		rated     int
		ratingSum float64
		fallbacks int
	}
	accums := make(map[string]*patternAccum)
	order := make([]string, 0)

	totalErrors := 0
	for _, r := range records {
		if !r.HasError() {
			continue
		}
		totalErrors++
		key := r.ErrorType
		a, ok := accums[key]
		if !ok {
			a = &patternAccum{}
			accums[key] = a
			order = append(order, key)
		}
		a.count++
		if r.Rating >= 1 && r.Rating <= 5 {
			a.rated++
			a.ratingSum += float64(r.Rating)
		}
		if r.FallbackUsed {
			a.fallbacks++
		}
	}

	report := schema.ErrorPatternReport{TotalErrors: totalErrors}
	if len(records) > 0 {
		report.ErrorRate = float64(totalErrors) / float64(len(records))
	}
	if totalErrors == 0 {
		report.Insights = []string{"No errors recorded in this window"}
		return report
	}

	patterns := make([]schema.ErrorPattern, 0, len(order))
	for _, key := range order {
		a := accums[key]
		p := schema.ErrorPattern{
			ErrorType:    key,
			Count:        a.count,
			FallbackRate: float64(a.fallbacks) / float64(a.count),
			Severity:     errorShareSeverity(float64(a.count) / float64(totalErrors)),
		}
		if a.rated > 0 {
			p.AverageRating = a.ratingSum / float64(a.rated)
		}
		patterns = append(patterns, p)
	}
	sort.SliceStable(patterns, func(i, j int) bool { return patterns[i].Count > patterns[j].Count })
	report.Patterns = patterns
	report.Insights = errorInsights(report)
	return report
}

func errorShareSeverity(share float64) schema.Severity {
	switch {
	case share >= errorShareCritical:
		return schema.SeverityCritical
	case share >= errorShareHigh:
		return schema.SeverityHigh
	case share >= errorShareMedium:
		return schema.SeverityMedium
	default:
		return schema.SeverityLow
	}
}

func errorInsights(report schema.ErrorPatternReport) []string {
	insights := []string{fmt.Sprintf(
		"%.0f%% of interactions in this window hit an error", report.ErrorRate*100)}
	top := report.Patterns[0]
	insights = append(insights, fmt.Sprintf(
		"%s is the dominant error type with %d occurrences", top.ErrorType, top.Count))
	for _, p := range report.Patterns {
		if p.FallbackRate >= 0.5 && p.Count >= 3 {
			insights = append(insights, fmt.Sprintf(
				"%s errors trigger fallbacks %.0f%% of the time", p.ErrorType, p.FallbackRate*100))
		}
	}
	return insights
}
