package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.August, 3, 10, 0, 0, 0, time.UTC)

// TestParseRelativeTime covers various valid and invalid cases.
func TestParseRelativeTime(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "days ago",
			input:    "3 days ago",
			expected: fixedNow.Add(-3 * 24 * time.Hour),
		},
		{
			name:     "singular unit",
			input:    "1 week ago",
			expected: fixedNow.Add(-7 * 24 * time.Hour),
		},
		{
			name:     "months ago",
			input:    "2 months ago",
			expected: fixedNow.AddDate(0, -2, 0),
		},
		{
			name:     "hours ago with caps",
			input:    "12 Hours Ago",
			expected: fixedNow.Add(-12 * time.Hour),
		},
		{
			name:        "missing ago",
			input:       "3 days",
			expectError: true,
		},
		{
			name:        "weeks overflowing nanoseconds",
			input:       "9999999999999 weeks ago",
			expectError: true,
		},
		{
			name:        "garbage",
			input:       "yesterday-ish",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeTime(tt.input, fixedNow)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

// TestParseLookbackDuration covers Go-native and human-readable formats.
func TestParseLookbackDuration(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Duration
		expectError bool
	}{
		{name: "go format", input: "720h", expected: 720 * time.Hour},
		{name: "days", input: "30 days", expected: 30 * 24 * time.Hour},
		{name: "weeks", input: "2 weeks", expected: 14 * 24 * time.Hour},
		{name: "months", input: "3 months", expected: 90 * 24 * time.Hour},
		{name: "zero", input: "0h", expectError: true},
		{name: "negative", input: "-24h", expectError: true},
		{name: "garbage", input: "a while", expectError: true},
		{name: "years overflowing nanoseconds", input: "9999999999999 years", expectError: true},
		{name: "value exceeding int64", input: "99999999999999999999 days", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLookbackDuration(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestParsePeriod covers named, compact, and fallback forms.
func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Duration
		expectError bool
	}{
		{name: "named week", input: "week", expected: 7 * 24 * time.Hour},
		{name: "named month", input: "month", expected: 30 * 24 * time.Hour},
		{name: "named quarter", input: "quarter", expected: 90 * 24 * time.Hour},
		{name: "compact days", input: "7d", expected: 7 * 24 * time.Hour},
		{name: "compact hours", input: "24h", expected: 24 * time.Hour},
		{name: "compact weeks", input: "2w", expected: 14 * 24 * time.Hour},
		{name: "lookback fallback", input: "14 days", expected: 14 * 24 * time.Hour},
		{name: "zero compact", input: "0d", expectError: true},
		{name: "days overflowing nanoseconds", input: "9999999999d", expectError: true},
		{name: "garbage", input: "fortnight", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
