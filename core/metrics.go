package core

import (
	"time"

	"github.com/qualens/qualens/schema"
)

// ComputeWindowMetrics summarizes one window of records. An empty window
// yields a zeroed struct rather than an error so callers can render
// "no data yet" without a special path.
func ComputeWindowMetrics(records []schema.EvaluationRecord, start, end time.Time) schema.WindowMetrics {
	m := schema.WindowMetrics{
		Start:        start,
		End:          end,
		TotalRecords: len(records),
	}
	if len(records) == 0 {
		return m
	}

	var ratingSum float64
	var rated int
	for _, r := range records {
		switch r.Rating {
		case 1:
			m.Distribution.Rating1++
		case 2:
			m.Distribution.Rating2++
		case 3:
			m.Distribution.Rating3++
		case 4:
			m.Distribution.Rating4++
		case 5:
			m.Distribution.Rating5++
		}
		if r.Rating >= 1 && r.Rating <= 5 {
			rated++
			ratingSum += float64(r.Rating)
		}
		switch {
		case r.Success == nil:
			m.Breakdown.Unevaluated++
		case *r.Success:
			m.Breakdown.Successful++
		default:
			m.Breakdown.Failed++
		}
	}

	if rated > 0 {
		m.AverageRating = ratingSum / float64(rated)
	}
	evaluated := m.Breakdown.Successful + m.Breakdown.Failed
	if evaluated > 0 {
		m.SuccessRate = float64(m.Breakdown.Successful) / float64(evaluated)
	}
	return m
}
