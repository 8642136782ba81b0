package core

import (
	"fmt"

	"github.com/qualens/qualens/schema"
)

// temporalMinBucket is the smallest bucket considered for best/worst insights.
const temporalMinBucket = 3

type temporalAccum struct {
	count     int
	rated     int
	ratingSum float64
	evaluated int
	successes int
}

func (a *temporalAccum) add(r schema.EvaluationRecord) {
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

func (a *temporalAccum) bucket(label string) schema.TemporalBucket {
	b := schema.TemporalBucket{Label: label, Count: a.count}
	if a.rated > 0 {
		b.AverageRating = a.ratingSum / float64(a.rated)
	}
	if a.evaluated > 0 {
		b.SuccessRate = float64(a.successes) / float64(a.evaluated)
	}
	return b
}

// AnalyzeTemporal breaks quality down by UTC hour of day and day of week.
// Empty buckets are omitted.
func AnalyzeTemporal(records []schema.EvaluationRecord) schema.TemporalReport {
	var hours [24]temporalAccum
	var weekdays [7]temporalAccum
	for _, r := range records {
		ts := r.CreatedAt.UTC()
		hours[ts.Hour()].add(r)
		weekdays[int(ts.Weekday())].add(r)
	}

	report := schema.TemporalReport{}
	for h, a := range hours {
		if a.count == 0 {
			continue
		}
		report.Hours = append(report.Hours, a.bucket(fmt.Sprintf("%02d:00", h)))
	}
	for d, a := range weekdays {
		if a.count == 0 {
			continue
		}
		report.Weekdays = append(report.Weekdays, a.bucket(weekdayName(d)))
	}
	report.Insights = temporalInsights(report)
	return report
}

func weekdayName(d int) string {
	names := [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	return names[d]
}

func temporalInsights(report schema.TemporalReport) []string {
	var insights []string
	if best, worst, ok := bestWorst(report.Hours); ok {
		insights = append(insights, fmt.Sprintf(
			"Quality peaks around %s (%.2f) and dips around %s (%.2f)",
			best.Label, best.AverageRating, worst.Label, worst.AverageRating))
	}
	if best, worst, ok := bestWorst(report.Weekdays); ok && best.Label != worst.Label {
		insights = append(insights, fmt.Sprintf(
			"%s is the strongest day (%.2f average) and %s the weakest (%.2f)",
			best.Label, best.AverageRating, worst.Label, worst.AverageRating))
	}
	return insights
}

// bestWorst picks the highest and lowest rated buckets that carry enough
// records to be meaningful.
func bestWorst(buckets []schema.TemporalBucket) (best, worst schema.TemporalBucket, ok bool) {
	for _, b := range buckets {
		if b.Count < temporalMinBucket || b.AverageRating == 0 {
			continue
		}
		if !ok {
			best, worst = b, b
			ok = true
			continue
		}
		if b.AverageRating > best.AverageRating {
			best = b
		}
		if b.AverageRating < worst.AverageRating {
			worst = b
		}
	}
	if ok && best.Label == worst.Label {
		ok = false
	}
	return best, worst, ok
}
