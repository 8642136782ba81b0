package core

import (
	"testing"
	"time"

	"github.com/qualens/qualens/schema"
	"github.com/stretchr/testify/assert"
)

func TestComputeWindowMetricsEmptyWindow(t *testing.T) {
	m := ComputeWindowMetrics(nil, baseTime, baseTime.Add(24*time.Hour))

	assert.Equal(t, 0, m.TotalRecords)
	assert.Zero(t, m.AverageRating)
	assert.Zero(t, m.SuccessRate)
	assert.Equal(t, baseTime, m.Start)
}

func TestComputeWindowMetrics(t *testing.T) {
	records := []schema.EvaluationRecord{
		testRecord("a", 5, 0),
		testRecord("b", 4, time.Hour),
		testRecord("c", 2, 2*time.Hour),
		{ID: "d", CreatedAt: baseTime.Add(3 * time.Hour)}, // Unrated, unevaluated
	}
	m := ComputeWindowMetrics(records, baseTime, baseTime.Add(24*time.Hour))

	assert.Equal(t, 4, m.TotalRecords)
	assert.InDelta(t, (5.0+4.0+2.0)/3.0, m.AverageRating, 1e-9)
	assert.Equal(t, 1, m.Distribution.Rating2)
	assert.Equal(t, 1, m.Distribution.Rating4)
	assert.Equal(t, 1, m.Distribution.Rating5)
	assert.Equal(t, 2, m.Breakdown.Successful)
	assert.Equal(t, 1, m.Breakdown.Failed)
	assert.Equal(t, 1, m.Breakdown.Unevaluated)
	assert.InDelta(t, 2.0/3.0, m.SuccessRate, 1e-9)
}

func TestComputeWindowMetricsSuccessRateIgnoresUnevaluated(t *testing.T) {
	records := []schema.EvaluationRecord{
		{ID: "a", Rating: 3, CreatedAt: baseTime},
		{ID: "b", Rating: 3, CreatedAt: baseTime},
	}
	m := ComputeWindowMetrics(records, baseTime, baseTime.Add(time.Hour))

	assert.Zero(t, m.SuccessRate)
	assert.Equal(t, 2, m.Breakdown.Unevaluated)
}
