package contract

import (
	"testing"
	"time"
)

// FuzzParsePeriod ensures arbitrary shorthand input never panics and never
// yields a non-positive duration without an error.
func FuzzParsePeriod(f *testing.F) {
	seeds := []string{"7d", "24h", "week", "month", "quarter", "3 months", "0d", "", "∞", "9999999999d"}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		d, err := ParsePeriod(input)
		if err == nil && d <= 0 {
			t.Errorf("ParsePeriod(%q) returned non-positive duration %v without error", input, d)
		}
	})
}

// FuzzParseRelativeTime ensures arbitrary input never panics and that
// successful parses always land in the past.
func FuzzParseRelativeTime(f *testing.F) {
	seeds := []string{"3 days ago", "1 minute ago", "100 years ago", "tomorrow", ""}
	for _, s := range seeds {
		f.Add(s)
	}

	now := time.Date(2026, time.August, 3, 10, 0, 0, 0, time.UTC)
	f.Fuzz(func(t *testing.T, input string) {
		parsed, err := ParseRelativeTime(input, now)
		if err == nil && parsed.After(now) {
			t.Errorf("ParseRelativeTime(%q) returned future time %s", input, parsed)
		}
	})
}
