package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseOperation verifies valid names resolve and unknown names fail.
func TestParseOperation(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    Operation
		expectError bool
	}{
		{name: "metrics", input: "metrics", expected: OpMetrics},
		{name: "mixed case", input: "Anomalies", expected: OpAnomalies},
		{name: "padded", input: "  predict ", expected: OpPredict},
		{name: "unknown", input: "export-all", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := ParseOperation(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, op)
		})
	}
}

// TestSeverityRank verifies the merge ordering critical > high > medium > low.
func TestSeverityRank(t *testing.T) {
	assert.Greater(t, SeverityCritical.Rank(), SeverityHigh.Rank())
	assert.Greater(t, SeverityHigh.Rank(), SeverityMedium.Rank())
	assert.Greater(t, SeverityMedium.Rank(), SeverityLow.Rank())
	assert.Equal(t, 0, Severity("bogus").Rank())
}

// TestMaxSeverity verifies the higher severity always wins.
func TestMaxSeverity(t *testing.T) {
	assert.Equal(t, SeverityCritical, MaxSeverity(SeverityLow, SeverityCritical))
	assert.Equal(t, SeverityCritical, MaxSeverity(SeverityCritical, SeverityMedium))
	assert.Equal(t, SeverityHigh, MaxSeverity(SeverityHigh, SeverityHigh))
}

// TestRiskLevelForScore verifies the 75/50/25 thresholds are strict and
// non-overlapping.
func TestRiskLevelForScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected RiskLevel
	}{
		{0, RiskLow},
		{24.9, RiskLow},
		{25, RiskMedium},
		{49.9, RiskMedium},
		{50, RiskHigh},
		{74.9, RiskHigh},
		{75, RiskCritical},
		{100, RiskCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RiskLevelForScore(tt.score), "score %v", tt.score)
	}
}

// TestBucketForScore verifies the five sentiment cutoffs.
func TestBucketForScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected SentimentBucket
	}{
		{1.0, SentimentVeryPositive},
		{0.6, SentimentVeryPositive},
		{0.59, SentimentPositive},
		{0.2, SentimentPositive},
		{0.0, SentimentNeutral},
		{-0.2, SentimentNeutral},
		{-0.21, SentimentNegative},
		{-0.6, SentimentNegative},
		{-0.61, SentimentVeryNegative},
		{-1.0, SentimentVeryNegative},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, BucketForScore(tt.score), "score %v", tt.score)
	}
}

// TestRecordText verifies free-text concatenation skips empty fields.
func TestRecordText(t *testing.T) {
	r := EvaluationRecord{Notes: "slow answer", Actual: "timed out"}
	assert.Equal(t, "slow answer timed out", r.Text())

	empty := EvaluationRecord{}
	assert.Equal(t, "", empty.Text())
}

// TestTruncateText verifies text shortening for table cells.
func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "this is...", TruncateText("this is a long sentence", 10))
	assert.Equal(t, "ab", TruncateText("abcd", 2))
}
