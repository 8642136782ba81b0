package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/internal/parquet"
	"github.com/qualens/qualens/schema"
)

// PrintAnomalies outputs the merged anomaly report.
func PrintAnomalies(report schema.AnomalyReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSONReport(report, cfg)
	case schema.CSVOut:
		return writeAnomaliesCSV(report, cfg)
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		rows := parquet.ConvertAnomalies(report.Anomalies)
		return parquet.WriteAnomaliesParquet(rows, cfg.OutputFile)
	default:
		return writeTableReport(cfg, func(w io.Writer) error {
			return writeAnomaliesTable(report, cfg, duration, w)
		})
	}
}

func writeAnomaliesCSV(report schema.AnomalyReport, cfg *contract.Config) error {
	header := []string{
		"record_id", "timestamp", "detector", "severity", "observed",
		"expected_low", "expected_high", "deviation", "factors", "action",
	}
	return writeCSVReport(header, cfg, func(w *csv.Writer) error {
		for _, a := range report.Anomalies {
			rec := []string{
				a.RecordID,
				a.Timestamp.Format(contract.DateTimeFormat),
				string(a.Detector),
				string(a.Severity),
				fmt.Sprintf("%.2f", a.Observed),
				fmt.Sprintf("%.2f", a.ExpectedLow),
				fmt.Sprintf("%.2f", a.ExpectedHigh),
				fmt.Sprintf("%.2f", a.Deviation),
				strings.Join(a.Factors, "|"),
				a.Action,
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeAnomaliesTable(report schema.AnomalyReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if report.InsufficientData {
		for _, insight := range report.Insights {
			if _, err := fmt.Fprintln(writer, insight); err != nil {
				return err
			}
		}
		return nil
	}

	table := tablewriter.NewWriter(writer)
	headers := []string{"When", "Record", "Detector", "Severity", "Observed", "Expected"}
	if cfg.Detail {
		headers = append(headers, "Factors")
	}
	table.Header(headers)
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	limit := len(report.Anomalies)
	if cfg.ResultLimit > 0 && limit > cfg.ResultLimit {
		limit = cfg.ResultLimit
	}
	width := GetMaxTextWidth(cfg)
	var data [][]string
	for _, a := range report.Anomalies[:limit] {
		row := []string{
			a.Timestamp.Format(contract.DateTimeFormat),
			a.RecordID,
			string(a.Detector),
			contract.GetSeverityLabel(a.Severity, cfg.UseColors),
			fmt.Sprintf("%.1f", a.Observed),
			fmt.Sprintf("[%.1f, %.1f]", a.ExpectedLow, a.ExpectedHigh),
		}
		if cfg.Detail {
			row = append(row, schema.TruncateText(strings.Join(a.Factors, "; "), width))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer,
		"Showing %s of %s anomalies across %s records\n",
		strconv.Itoa(limit), strconv.Itoa(report.AnomaliesDetected),
		strconv.Itoa(report.RecordsAnalyzed)); err != nil {
		return err
	}
	if err := writeBulletList(writer, report.Insights, cfg); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration)
	return err
}
