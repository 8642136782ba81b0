package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/schema"
)

// PrintErrorPatterns outputs the error-type breakdown.
func PrintErrorPatterns(report schema.ErrorPatternReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSONReport(report, cfg)
	case schema.CSVOut:
		return writeErrorPatternsCSV(report, cfg)
	case schema.ParquetOut:
		return errParquetUnsupported("error patterns")
	default:
		return writeTableReport(cfg, func(w io.Writer) error {
			return writeErrorPatternsTable(report, cfg, duration, w)
		})
	}
}

func writeErrorPatternsCSV(report schema.ErrorPatternReport, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)
	header := []string{"error_type", "count", "average_rating", "fallback_rate", "severity"}
	return writeCSVReport(header, cfg, func(w *csv.Writer) error {
		for _, p := range report.Patterns {
			rec := []string{
				p.ErrorType,
				strconv.Itoa(p.Count),
				fmtFloat(p.AverageRating),
				fmtFloat(p.FallbackRate),
				string(p.Severity),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeErrorPatternsTable(report schema.ErrorPatternReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Error Type", "Count", "Avg Rating", "Fallback Rate", "Severity"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, p := range report.Patterns {
		data = append(data, []string{
			p.ErrorType,
			strconv.Itoa(p.Count),
			fmtFloat(p.AverageRating),
			formatPercent(p.FallbackRate),
			contract.GetSeverityLabel(p.Severity, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "%d errors, %s error rate\n",
		report.TotalErrors, formatPercent(report.ErrorRate)); err != nil {
		return err
	}
	if err := writeBulletList(writer, report.Insights, cfg); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration)
	return err
}

// PrintTemporal outputs the hour-of-day and day-of-week quality breakdown.
func PrintTemporal(report schema.TemporalReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSONReport(report, cfg)
	case schema.CSVOut:
		return writeTemporalCSV(report, cfg)
	case schema.ParquetOut:
		return errParquetUnsupported("temporal")
	default:
		return writeTableReport(cfg, func(w io.Writer) error {
			return writeTemporalTable(report, cfg, duration, w)
		})
	}
}

func writeTemporalCSV(report schema.TemporalReport, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)
	header := []string{"dimension", "label", "count", "average_rating", "success_rate"}
	return writeCSVReport(header, cfg, func(w *csv.Writer) error {
		write := func(dimension string, buckets []schema.TemporalBucket) error {
			for _, b := range buckets {
				rec := []string{
					dimension,
					b.Label,
					strconv.Itoa(b.Count),
					fmtFloat(b.AverageRating),
					fmtFloat(b.SuccessRate),
				}
				if err := w.Write(rec); err != nil {
					return err
				}
			}
			return nil
		}
		if err := write("hour", report.Hours); err != nil {
			return err
		}
		return write("weekday", report.Weekdays)
	})
}

func writeTemporalTable(report schema.TemporalReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	writeBuckets := func(title string, buckets []schema.TemporalBucket) error {
		if _, err := fmt.Fprintln(writer, title); err != nil {
			return err
		}
		table := tablewriter.NewWriter(writer)
		table.Header([]string{"Bucket", "Records", "Avg Rating", "Success Rate"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, b := range buckets {
			data = append(data, []string{
				b.Label,
				strconv.Itoa(b.Count),
				fmtFloat(b.AverageRating),
				formatPercent(b.SuccessRate),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	}

	if err := writeBuckets("By hour of day (UTC)", report.Hours); err != nil {
		return err
	}
	if err := writeBuckets("By day of week", report.Weekdays); err != nil {
		return err
	}
	if err := writeBulletList(writer, report.Insights, cfg); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration)
	return err
}
