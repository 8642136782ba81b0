package contract

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// scaleDuration multiplies a count of units into a time.Duration, rejecting
// values whose product would overflow the int64 nanosecond range.
func scaleDuration(value int64, unit time.Duration) (time.Duration, error) {
	if value <= 0 || value > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("duration value %d is out of range", value)
	}
	return time.Duration(value) * unit, nil
}

// Define the regular expression to capture "N [units] ago"
// e.g., "2 weeks ago", "3 months ago", "36 hours ago".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?\s+ago$`)

// ParseRelativeTime converts strings like "2 weeks ago" into a time.Time in
// the past.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	// 1: Value (e.g., "2")
	// 2: Unit (e.g., "year" or "month")
	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid relative time value: %s", matches[1])
	}
	unit := matches[2]

	switch unit {
	case "year":
		return now.AddDate(-value, 0, 0), nil
	case "month":
		return now.AddDate(0, -value, 0), nil
	}

	var scale time.Duration
	switch unit {
	case "week":
		scale = 7 * 24 * time.Hour
	case "day":
		scale = 24 * time.Hour
	case "hour":
		scale = time.Hour
	case "minute":
		scale = time.Minute
	default:
		// Should be caught by the regex, but good for safety
		return time.Time{}, fmt.Errorf("unsupported time unit: %s", unit)
	}
	lookback, err := scaleDuration(int64(value), scale)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(-lookback), nil
}

// Define the regular expression to capture "N [units]".
var lookbackDurationRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?$`)

// ParseLookbackDuration converts strings like "3 months" or "720h" into a
// single time.Duration. It first tries Go's built-in time.ParseDuration for
// standard formats, then falls back to custom parsing for human-readable
// formats.
func ParseLookbackDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	// Try Go's built-in duration parsing first (e.g., "720h", "168h", "30m")
	if duration, err := time.ParseDuration(s); err == nil {
		if duration <= 0 {
			return 0, errors.New("duration must be positive")
		}
		return duration, nil
	}

	// Fall back to custom parsing for human-readable formats (e.g., "30 days")
	s = strings.ToLower(s)
	matches := lookbackDurationRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid lookback duration format: %s", s)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid lookback value: %s", matches[1])
	}
	unit := matches[2]

	switch unit {
	case "year":
		// Approximation: 1 year ≈ 365 days
		return scaleDuration(value, 365*24*time.Hour)
	case "month":
		// Approximation: 1 month ≈ 30 days
		return scaleDuration(value, 30*24*time.Hour)
	case "week":
		return scaleDuration(value, 7*24*time.Hour)
	case "day":
		return scaleDuration(value, 24*time.Hour)
	case "hour":
		return scaleDuration(value, time.Hour)
	case "minute":
		return scaleDuration(value, time.Minute)
	default:
		// Should be caught by the regex
		return 0, errors.New("unsupported time unit")
	}
}

// Pattern for compact period shorthands like "7d" or "24h".
var compactPeriodRe = regexp.MustCompile(`^(\d+)([hdwm])$`)

// ParsePeriod resolves a window shorthand into a lookback duration.
// Accepted forms: named periods (day, week, month, quarter, year), compact
// forms (24h, 7d, 2w, 3m), and anything ParseLookbackDuration accepts.
func ParsePeriod(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	switch s {
	case "day", "today":
		return 24 * time.Hour, nil
	case "week":
		return 7 * 24 * time.Hour, nil
	case "month":
		return 30 * 24 * time.Hour, nil
	case "quarter":
		return 90 * 24 * time.Hour, nil
	case "year":
		return 365 * 24 * time.Hour, nil
	}

	if matches := compactPeriodRe.FindStringSubmatch(s); len(matches) > 0 {
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid period value: %s", matches[1])
		}
		if value == 0 {
			return 0, errors.New("zero duration is not useful")
		}
		switch matches[2] {
		case "h":
			return scaleDuration(value, time.Hour)
		case "d":
			return scaleDuration(value, 24*time.Hour)
		case "w":
			return scaleDuration(value, 7*24*time.Hour)
		case "m":
			return scaleDuration(value, 30*24*time.Hour)
		}
	}

	return ParseLookbackDuration(s)
}
