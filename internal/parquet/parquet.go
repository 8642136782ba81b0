// Package parquet provides data structures and functions for exporting
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/qualens/qualens/schema"
)

// AnomalyRow is the columnar projection of one merged anomaly.
type AnomalyRow struct {
	RecordID     string    `parquet:"record_id,snappy"`
	Timestamp    time.Time `parquet:"timestamp,snappy"`
	Detector     string    `parquet:"detector,snappy"`
	Severity     string    `parquet:"severity,snappy"`
	Observed     float64   `parquet:"observed,snappy"`
	ExpectedLow  float64   `parquet:"expected_low,snappy"`
	ExpectedHigh float64   `parquet:"expected_high,snappy"`
	Deviation    float64   `parquet:"deviation,snappy"`

	// Action is nullable; not every detector recommends one.
	Action *string `parquet:"action,optional,snappy"`
}

// DailyQualityRow is the columnar projection of one per-day aggregate.
type DailyQualityRow struct {
	Date          string  `parquet:"date,snappy"`
	Count         int32   `parquet:"count,snappy"`
	AverageRating float64 `parquet:"average_rating,snappy"`
	SuccessRate   float64 `parquet:"success_rate,snappy"`
}

// EvaluationRecordRow is the columnar projection of one evaluation record,
// used by the store export command.
type EvaluationRecordRow struct {
	ID             string    `parquet:"id,snappy"`
	OwnerID        string    `parquet:"owner_id,snappy"`
	ConversationID string    `parquet:"conversation_id,snappy"`
	Rating         int32     `parquet:"rating,snappy"`
	Success        *bool     `parquet:"success,optional,snappy"`
	Notes          *string   `parquet:"notes,optional,snappy"`
	ErrorType      *string   `parquet:"error_type,optional,snappy"`
	FallbackUsed   bool      `parquet:"fallback_used,snappy"`
	Model          *string   `parquet:"model,optional,snappy"`
	Provider       *string   `parquet:"provider,optional,snappy"`
	InputTokens    *int64    `parquet:"input_tokens,optional,snappy"`
	OutputTokens   *int64    `parquet:"output_tokens,optional,snappy"`
	LatencyMs      *int64    `parquet:"latency_ms,optional,snappy"`
	ToolCount      int32     `parquet:"tool_count,snappy"`
	CreatedAt      time.Time `parquet:"created_at,snappy"`
}

// ConvertAnomalies maps merged anomalies onto their parquet rows.
func ConvertAnomalies(anomalies []schema.Anomaly) []AnomalyRow {
	rows := make([]AnomalyRow, 0, len(anomalies))
	for _, a := range anomalies {
		row := AnomalyRow{
			RecordID:     a.RecordID,
			Timestamp:    a.Timestamp,
			Detector:     string(a.Detector),
			Severity:     string(a.Severity),
			Observed:     a.Observed,
			ExpectedLow:  a.ExpectedLow,
			ExpectedHigh: a.ExpectedHigh,
			Deviation:    a.Deviation,
		}
		if a.Action != "" {
			action := a.Action
			row.Action = &action
		}
		rows = append(rows, row)
	}
	return rows
}

// ConvertDailyQuality maps per-day aggregates onto their parquet rows.
func ConvertDailyQuality(days []schema.DailyQuality) []DailyQualityRow {
	rows := make([]DailyQualityRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, DailyQualityRow{
			Date:          d.Date,
			Count:         int32(d.Count),
			AverageRating: d.AverageRating,
			SuccessRate:   d.SuccessRate,
		})
	}
	return rows
}

// ConvertRecords maps evaluation records onto their parquet rows.
func ConvertRecords(records []schema.EvaluationRecord) []EvaluationRecordRow {
	rows := make([]EvaluationRecordRow, 0, len(records))
	for _, r := range records {
		row := EvaluationRecordRow{
			ID:             r.ID,
			OwnerID:        r.OwnerID,
			ConversationID: r.ConversationID,
			Rating:         int32(r.Rating),
			Success:        r.Success,
			FallbackUsed:   r.FallbackUsed,
			InputTokens:    r.InputTokens,
			OutputTokens:   r.OutputTokens,
			LatencyMs:      r.LatencyMs,
			ToolCount:      int32(len(r.ToolCalls)),
			CreatedAt:      r.CreatedAt,
		}
		row.Notes = optionalString(r.Notes)
		row.ErrorType = optionalString(r.ErrorType)
		row.Model = optionalString(r.Model)
		row.Provider = optionalString(r.Provider)
		rows = append(rows, row)
	}
	return rows
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// WriteAnomaliesParquet writes anomaly rows to a Parquet file.
func WriteAnomaliesParquet(rows []AnomalyRow, outputPath string) error {
	return writeRows(rows, outputPath)
}

// WriteDailyQualityParquet writes per-day quality rows to a Parquet file.
func WriteDailyQualityParquet(rows []DailyQualityRow, outputPath string) error {
	return writeRows(rows, outputPath)
}

// WriteRecordsParquet writes evaluation record rows to a Parquet file.
func WriteRecordsParquet(rows []EvaluationRecordRow, outputPath string) error {
	return writeRows(rows, outputPath)
}

// writeRows writes any row type to a Parquet file using struct schema
// inference from the row's tags.
func writeRows[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
