package schema

// Custom string types for type safety.
type (
	// Operation identifies one analysis kind. The set of operations is
	// closed; dispatch over it is exhaustive rather than string-switched.
	Operation string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the record store.
	DatabaseBackend string

	// TrendLabel classifies the direction of a quality trend.
	TrendLabel string

	// DetectorType identifies which detection method produced an anomaly.
	DetectorType string

	// Severity ranks how serious an anomaly is.
	Severity string

	// RiskLevel is the discrete classification of a composite risk score.
	RiskLevel string

	// SentimentBucket is one of the five aggregate sentiment levels.
	SentimentBucket string

	// Significance grades how meaningful a tool's quality impact is.
	Significance string
)

// All analysis operations supported.
const (
	OpMetrics        Operation = "metrics"
	OpTrends         Operation = "trends"
	OpComparePeriods Operation = "compare-periods"
	OpCompareModels  Operation = "compare-models"
	OpToolImpact     Operation = "tool-impact"
	OpAnomalies      Operation = "anomalies"
	OpPredict        Operation = "predict"
	OpRisk           Operation = "risk"
	OpSentiment      Operation = "sentiment"
	OpCategories     Operation = "categories"
	OpErrorPatterns  Operation = "error-patterns"
	OpTemporal       Operation = "temporal"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All record store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All trend labels supported.
const (
	TrendImproving TrendLabel = "improving"
	TrendDeclining TrendLabel = "declining"
	TrendStable    TrendLabel = "stable"
)

// All anomaly detector types supported.
const (
	DetectorStatisticalOutlier   DetectorType = "statistical_outlier"
	DetectorIQROutlier           DetectorType = "iqr_outlier"
	DetectorSuddenDrop           DetectorType = "sudden_drop"
	DetectorSuddenSpike          DetectorType = "sudden_spike"
	DetectorSustainedDegradation DetectorType = "sustained_degradation"
)

// All severities supported, from least to most serious.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// All risk levels supported.
const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// All sentiment buckets supported.
const (
	SentimentVeryPositive SentimentBucket = "veryPositive"
	SentimentPositive     SentimentBucket = "positive"
	SentimentNeutral      SentimentBucket = "neutral"
	SentimentNegative     SentimentBucket = "negative"
	SentimentVeryNegative SentimentBucket = "veryNegative"
)

// All significance grades supported.
const (
	SignificanceStrong   Significance = "strong"
	SignificanceModerate Significance = "moderate"
	SignificanceWeak     Significance = "weak"
)

// AllOperations returns every supported analysis operation. The dispatcher
// and the MCP tool registry iterate this list so new operations only need to
// be added here and in the dispatch switch.
var AllOperations = []Operation{
	OpMetrics,
	OpTrends,
	OpComparePeriods,
	OpCompareModels,
	OpToolImpact,
	OpAnomalies,
	OpPredict,
	OpRisk,
	OpSentiment,
	OpCategories,
	OpErrorPatterns,
	OpTemporal,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid record store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// severityRanks orders severities for merge comparisons.
var severityRanks = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the numeric order of a severity; unknown severities rank lowest.
func (s Severity) Rank() int {
	return severityRanks[s]
}
