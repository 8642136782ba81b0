package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/schema"
)

// fetchRecords performs the single upstream fetch for an analysis call.
// Every analyzer downstream consumes the returned snapshot without further I/O.
func fetchRecords(ctx context.Context, cfg *contract.Config, store contract.RecordStore) ([]schema.EvaluationRecord, error) {
	records, err := store.FindRecords(ctx, cfg.Filter())
	if err != nil {
		return nil, fmt.Errorf("fetch records for %s: %w", cfg.OwnerID, err)
	}
	cfg.Log().Debug("fetched records",
		"owner", cfg.OwnerID,
		"count", len(records),
		"start", cfg.StartTime,
		"end", cfg.EndTime)
	return records, nil
}

// BuildPoints projects records onto the numeric timeline used by the trend,
// anomaly and prediction analyzers. Points are sorted ascending by timestamp;
// duplicate timestamps are kept as-is.
func BuildPoints(records []schema.EvaluationRecord) []schema.TimeSeriesPoint {
	points := make([]schema.TimeSeriesPoint, 0, len(records))
	for _, r := range records {
		success := r.Success != nil && *r.Success
		points = append(points, schema.TimeSeriesPoint{
			RecordID:     r.ID,
			Timestamp:    r.CreatedAt,
			Rating:       float64(r.Rating),
			Success:      success,
			HasError:     r.HasError(),
			FallbackUsed: r.FallbackUsed,
			ToolCount:    len(r.ToolCalls),
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	return points
}

// pointRatings extracts the rating series from a point slice.
func pointRatings(points []schema.TimeSeriesPoint) []float64 {
	ratings := make([]float64, len(points))
	for i, p := range points {
		ratings[i] = p.Rating
	}
	return ratings
}
