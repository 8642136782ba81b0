package schema

import (
	"fmt"
	"strings"
)

// ParseOperation maps a user-facing name onto the closed Operation set.
// Unknown names are rejected before any fetch happens.
func ParseOperation(name string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllOperations {
		if op == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q (valid: %s)", name, JoinOperations(", "))
}

// JoinOperations renders the operation list for help and error text.
func JoinOperations(sep string) string {
	names := make([]string, len(AllOperations))
	for i, op := range AllOperations {
		names[i] = string(op)
	}
	return strings.Join(names, sep)
}

// MaxSeverity returns the more serious of two severities.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// RiskLevelForScore maps a 0-100 composite score onto a discrete level.
// Thresholds are fixed and non-overlapping.
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score >= 75:
		return RiskCritical
	case score >= 50:
		return RiskHigh
	case score >= 25:
		return RiskMedium
	default:
		return RiskLow
	}
}

// BucketForScore maps a per-record sentiment score onto one of the five
// aggregate buckets using fixed cutoffs.
func BucketForScore(score float64) SentimentBucket {
	switch {
	case score >= 0.6:
		return SentimentVeryPositive
	case score >= 0.2:
		return SentimentPositive
	case score >= -0.2:
		return SentimentNeutral
	case score >= -0.6:
		return SentimentNegative
	default:
		return SentimentVeryNegative
	}
}

// TruncateText shortens free text for table cells, appending an ellipsis
// marker when anything was cut.
func TruncateText(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		if len(s) <= maxLen {
			return s
		}
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
