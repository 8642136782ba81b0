package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMetrics() schema.WindowMetrics {
	return schema.WindowMetrics{
		Start:         time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		End:           time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		TotalRecords:  42,
		AverageRating: 4.2,
		SuccessRate:   0.88,
		Distribution:  schema.QualityDistribution{Rating1: 1, Rating2: 2, Rating3: 5, Rating4: 14, Rating5: 20},
		Breakdown:     schema.EvaluationBreakdown{Successful: 35, Failed: 5, Unevaluated: 2},
	}
}

func fileCfg(t *testing.T, output schema.OutputMode, name string) *contract.Config {
	t.Helper()
	return &contract.Config{
		Precision:  1,
		Output:     output,
		OutputFile: filepath.Join(t.TempDir(), name),
	}
}

// TestPrintMetricsJSON writes the summary as JSON and reads it back.
func TestPrintMetricsJSON(t *testing.T) {
	cfg := fileCfg(t, schema.JSONOut, "metrics.json")
	require.NoError(t, PrintMetrics(sampleMetrics(), cfg, time.Millisecond))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var got schema.WindowMetrics
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 42, got.TotalRecords)
	assert.InDelta(t, 4.2, got.AverageRating, 0.001)
}

// TestPrintMetricsCSV verifies the CSV header and row values.
func TestPrintMetricsCSV(t *testing.T) {
	cfg := fileCfg(t, schema.CSVOut, "metrics.csv")
	require.NoError(t, PrintMetrics(sampleMetrics(), cfg, time.Millisecond))

	f, err := os.Open(cfg.OutputFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "total_records", rows[0][2])
	assert.Equal(t, "42", rows[1][2])
	assert.Equal(t, "4.2", rows[1][3])
}

// TestPrintMetricsTable checks the human-readable rendering.
func TestPrintMetricsTable(t *testing.T) {
	cfg := fileCfg(t, schema.TextOut, "metrics.txt")
	require.NoError(t, PrintMetrics(sampleMetrics(), cfg, time.Millisecond))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "42 records")
	assert.Contains(t, text, "success rate 88.0%")
	assert.Contains(t, text, "35 successful, 5 failed, 2 unevaluated")
}

// TestPrintMetricsParquetUnsupported verifies metrics reject parquet output.
func TestPrintMetricsParquetUnsupported(t *testing.T) {
	cfg := fileCfg(t, schema.ParquetOut, "metrics.parquet")
	err := PrintMetrics(sampleMetrics(), cfg, time.Millisecond)
	assert.ErrorContains(t, err, "parquet output is not supported")
}

// TestPrintTrendsParquet covers the columnar trend export path.
func TestPrintTrendsParquet(t *testing.T) {
	report := schema.TrendReport{
		Days: []schema.DailyQuality{
			{Date: "2025-07-01", Count: 10, AverageRating: 4.0, SuccessRate: 0.9},
			{Date: "2025-07-02", Count: 12, AverageRating: 4.3, SuccessRate: 0.95},
		},
		Trend:          schema.TrendImproving,
		SufficientData: true,
	}

	cfg := fileCfg(t, schema.ParquetOut, "trends.parquet")
	require.NoError(t, PrintTrends(report, cfg, time.Millisecond))

	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	// Parquet to stdout makes no sense, so the file is mandatory.
	cfg.OutputFile = ""
	assert.ErrorContains(t, PrintTrends(report, cfg, time.Millisecond), "requires --output-file")
}

// TestPrintAnomaliesCSV verifies anomalies render one CSV row each.
func TestPrintAnomaliesCSV(t *testing.T) {
	report := schema.AnomalyReport{
		RecordsAnalyzed:   30,
		AnomaliesDetected: 1,
		Anomalies: []schema.Anomaly{{
			RecordID:     "day-2025-07-15",
			Timestamp:    time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
			Detector:     schema.DetectorSuddenDrop,
			Severity:     schema.SeverityHigh,
			Observed:     2.1,
			ExpectedLow:  3.5,
			ExpectedHigh: 4.5,
			Deviation:    -1.4,
			Factors:      []string{"rating drop"},
			Action:       "inspect recent deploys",
		}},
	}

	cfg := fileCfg(t, schema.CSVOut, "anomalies.csv")
	require.NoError(t, PrintAnomalies(report, cfg, time.Millisecond))

	f, err := os.Open(cfg.OutputFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, string(schema.DetectorSuddenDrop), rows[1][2])
	assert.Equal(t, string(schema.SeverityHigh), rows[1][3])
}

// TestFormatHelpers covers the shared formatting closures.
func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "87.5%", formatPercent(0.875))

	oneDecimal := createFloatFormatter(1)
	twoDecimals := createFloatFormatter(2)
	assert.Equal(t, "3.5", oneDecimal(3.456))
	assert.Equal(t, "3.46", twoDecimals(3.456))
}

// TestWriteJSONIndented verifies the encoder emits indented output.
func TestWriteJSONIndented(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, writeJSON(&sb, map[string]int{"a": 1}))
	assert.Contains(t, sb.String(), "  \"a\": 1")
}
