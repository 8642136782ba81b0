package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/qualens/qualens/schema"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
	GoodColor     = color.New(color.FgGreen)               // goodColor represents healthy signal.
)

// GetSeverityLabel returns the display label for an anomaly severity,
// colored when enabled.
func GetSeverityLabel(severity schema.Severity, useColors bool) string {
	text := string(severity)
	if !useColors {
		return text
	}
	switch severity {
	case schema.SeverityCritical:
		return CriticalColor.Sprint(text)
	case schema.SeverityHigh:
		return HighColor.Sprint(text)
	case schema.SeverityMedium:
		return ModerateColor.Sprint(text)
	default: // low
		return LowColor.Sprint(text)
	}
}

// GetRiskLabel returns the display label for a risk level, colored when
// enabled.
func GetRiskLabel(level schema.RiskLevel, useColors bool) string {
	text := string(level)
	if !useColors {
		return text
	}
	switch level {
	case schema.RiskCritical:
		return CriticalColor.Sprint(text)
	case schema.RiskHigh:
		return HighColor.Sprint(text)
	case schema.RiskMedium:
		return ModerateColor.Sprint(text)
	default: // low
		return GoodColor.Sprint(text)
	}
}

// GetTrendLabel returns the display label for a trend, colored when enabled.
func GetTrendLabel(trend schema.TrendLabel, useColors bool) string {
	text := string(trend)
	if !useColors {
		return text
	}
	switch trend {
	case schema.TrendImproving:
		return GoodColor.Sprint(text)
	case schema.TrendDeclining:
		return CriticalColor.Sprint(text)
	default: // stable
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the default
// record store.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".qualens_records.db"
	}
	return filepath.Join(homeDir, ".qualens_records.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
