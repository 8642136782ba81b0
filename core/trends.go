package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/qualens/qualens/core/stat"
	"github.com/qualens/qualens/schema"
)

const dayFormat = "2006-01-02"

// ComputeQualityTrends buckets records by UTC calendar day and classifies
// the whole-window trend by comparing first-half vs second-half daily
// averages against the configured threshold. Windows spanning fewer than
// minDays distinct days are reported as stable with SufficientData unset.
func ComputeQualityTrends(records []schema.EvaluationRecord, minDays int, threshold float64) schema.TrendReport {
	days := bucketByDay(records)
	report := schema.TrendReport{
		Days:  days,
		Trend: schema.TrendStable,
	}
	if len(days) < minDays {
		return report
	}
	report.SufficientData = true

	half := len(days) / 2
	firstAvgs := make([]float64, 0, half)
	secondAvgs := make([]float64, 0, len(days)-half)
	for i, d := range days {
		if i < half {
			firstAvgs = append(firstAvgs, d.AverageRating)
		} else {
			secondAvgs = append(secondAvgs, d.AverageRating)
		}
	}
	report.FirstHalfAvg = stat.Mean(firstAvgs)
	report.SecondHalfAvg = stat.Mean(secondAvgs)

	var change float64
	if report.FirstHalfAvg != 0 {
		change = (report.SecondHalfAvg - report.FirstHalfAvg) / report.FirstHalfAvg
	}
	report.ChangePercent = change * 100

	switch {
	case change >= threshold:
		report.Trend = schema.TrendImproving
	case change <= -threshold:
		report.Trend = schema.TrendDeclining
	default:
		report.Trend = schema.TrendStable
	}
	return report
}

// bucketByDay aggregates records into per-day quality rows, sorted by date.
func bucketByDay(records []schema.EvaluationRecord) []schema.DailyQuality {
	type dayAccum struct {
		count     int
		rated     int
		ratingSum float64
		successes int
		evaluated int
	}
	accums := make(map[string]*dayAccum)
	for _, r := range records {
		key := r.CreatedAt.UTC().Format(dayFormat)
		a, ok := accums[key]
		if !ok {
			a = &dayAccum{}
			accums[key] = a
		}
		a.count++
		if r.Rating >= 1 && r.Rating <= 5 {
			a.rated++
			a.ratingSum += float64(r.Rating)
		}
		if r.Success != nil {
			a.evaluated++
			if *r.Success {
				a.successes++
			}
		}
	}

	days := make([]schema.DailyQuality, 0, len(accums))
	for key, a := range accums {
		d := schema.DailyQuality{Date: key, Count: a.count}
		if a.rated > 0 {
			d.AverageRating = a.ratingSum / float64(a.rated)
		}
		if a.evaluated > 0 {
			d.SuccessRate = float64(a.successes) / float64(a.evaluated)
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// ComparePeriods reports signed deltas between the current window and the
// equal-length window immediately preceding it.
func ComparePeriods(current, previous schema.WindowMetrics) schema.PeriodComparison {
	cmp := schema.PeriodComparison{
		Current:          current,
		Previous:         previous,
		RatingDelta:      current.AverageRating - previous.AverageRating,
		SuccessRateDelta: current.SuccessRate - previous.SuccessRate,
		VolumeDelta:      current.TotalRecords - previous.TotalRecords,
	}
	cmp.Summary = summarizeComparison(cmp)
	return cmp
}

func summarizeComparison(cmp schema.PeriodComparison) string {
	if cmp.Current.TotalRecords == 0 && cmp.Previous.TotalRecords == 0 {
		return "No records in either period"
	}
	var quality string
	switch {
	case cmp.RatingDelta >= 0.05:
		quality = fmt.Sprintf("Quality improved by %.2f points", cmp.RatingDelta)
	case cmp.RatingDelta <= -0.05:
		quality = fmt.Sprintf("Quality declined by %.2f points", math.Abs(cmp.RatingDelta))
	default:
		quality = "Quality held steady"
	}
	var volume string
	switch {
	case cmp.VolumeDelta > 0:
		volume = fmt.Sprintf("%d more records", cmp.VolumeDelta)
	case cmp.VolumeDelta < 0:
		volume = fmt.Sprintf("%d fewer records", -cmp.VolumeDelta)
	default:
		volume = "the same volume"
	}
	return fmt.Sprintf("%s with %s than the previous period", quality, volume)
}
