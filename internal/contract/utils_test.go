package contract

import (
	"testing"

	"github.com/qualens/qualens/schema"
	"github.com/stretchr/testify/assert"
)

// TestParseBoolString verifies accepted spellings and rejections.
func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

// TestLabelsWithoutColor verifies plain labels pass through unstyled so that
// CSV and JSON output stay clean.
func TestLabelsWithoutColor(t *testing.T) {
	assert.Equal(t, "critical", GetSeverityLabel(schema.SeverityCritical, false))
	assert.Equal(t, "high", GetRiskLabel(schema.RiskHigh, false))
	assert.Equal(t, "improving", GetTrendLabel(schema.TrendImproving, false))
}

// TestGetStoreDBFilePath verifies a usable path comes back either way.
func TestGetStoreDBFilePath(t *testing.T) {
	assert.NotEmpty(t, GetStoreDBFilePath())
}
