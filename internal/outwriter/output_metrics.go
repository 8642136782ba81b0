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
	"github.com/qualens/qualens/internal/parquet"
	"github.com/qualens/qualens/schema"
)

// PrintMetrics outputs the window summary, dispatching on the configured
// output format.
func PrintMetrics(metrics schema.WindowMetrics, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSONReport(metrics, cfg)
	case schema.CSVOut:
		return writeMetricsCSV(metrics, cfg)
	case schema.ParquetOut:
		return errParquetUnsupported("metrics")
	default:
		return writeTableReport(cfg, func(w io.Writer) error {
			return writeMetricsTable(metrics, cfg, duration, w)
		})
	}
}

func writeMetricsCSV(metrics schema.WindowMetrics, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)
	header := []string{
		"start", "end", "total_records", "average_rating", "success_rate",
		"rating_1", "rating_2", "rating_3", "rating_4", "rating_5",
		"successful", "failed", "unevaluated",
	}
	return writeCSVReport(header, cfg, func(w *csv.Writer) error {
		return w.Write([]string{
			metrics.Start.Format(contract.DateTimeFormat),
			metrics.End.Format(contract.DateTimeFormat),
			strconv.Itoa(metrics.TotalRecords),
			fmtFloat(metrics.AverageRating),
			fmtFloat(metrics.SuccessRate),
			strconv.Itoa(metrics.Distribution.Rating1),
			strconv.Itoa(metrics.Distribution.Rating2),
			strconv.Itoa(metrics.Distribution.Rating3),
			strconv.Itoa(metrics.Distribution.Rating4),
			strconv.Itoa(metrics.Distribution.Rating5),
			strconv.Itoa(metrics.Breakdown.Successful),
			strconv.Itoa(metrics.Breakdown.Failed),
			strconv.Itoa(metrics.Breakdown.Unevaluated),
		})
	})
}

func writeMetricsTable(metrics schema.WindowMetrics, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rating", "Count"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	data := [][]string{
		{"1", strconv.Itoa(metrics.Distribution.Rating1)},
		{"2", strconv.Itoa(metrics.Distribution.Rating2)},
		{"3", strconv.Itoa(metrics.Distribution.Rating3)},
		{"4", strconv.Itoa(metrics.Distribution.Rating4)},
		{"5", strconv.Itoa(metrics.Distribution.Rating5)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer,
		"%d records from %s to %s: average rating %s, success rate %s\n",
		metrics.TotalRecords,
		metrics.Start.Format(contract.DateTimeFormat),
		metrics.End.Format(contract.DateTimeFormat),
		fmtFloat(metrics.AverageRating),
		formatPercent(metrics.SuccessRate)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer,
		"Breakdown: %d successful, %d failed, %d unevaluated\n",
		metrics.Breakdown.Successful, metrics.Breakdown.Failed,
		metrics.Breakdown.Unevaluated); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration)
	return err
}

// PrintTrends outputs the daily quality trend report.
func PrintTrends(report schema.TrendReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSONReport(report, cfg)
	case schema.CSVOut:
		return writeTrendsCSV(report, cfg)
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		rows := parquet.ConvertDailyQuality(report.Days)
		return parquet.WriteDailyQualityParquet(rows, cfg.OutputFile)
	default:
		return writeTableReport(cfg, func(w io.Writer) error {
			return writeTrendsTable(report, cfg, duration, w)
		})
	}
}

func writeTrendsCSV(report schema.TrendReport, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)
	header := []string{"date", "count", "average_rating", "success_rate", "trend"}
	return writeCSVReport(header, cfg, func(w *csv.Writer) error {
		for _, d := range report.Days {
			rec := []string{
				d.Date,
				strconv.Itoa(d.Count),
				fmtFloat(d.AverageRating),
				fmtFloat(d.SuccessRate),
				string(report.Trend),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeTrendsTable(report schema.TrendReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Date", "Records", "Avg Rating", "Success Rate"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, d := range report.Days {
		data = append(data, []string{
			d.Date,
			strconv.Itoa(d.Count),
			fmtFloat(d.AverageRating),
			formatPercent(d.SuccessRate),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if !report.SufficientData {
		if _, err := fmt.Fprintf(writer,
			"Not enough distinct days for a trend; reporting %s\n",
			contract.GetTrendLabel(report.Trend, cfg.UseColors)); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(writer,
			"Trend: %s (first half %s, second half %s, change %s%%)\n",
			contract.GetTrendLabel(report.Trend, cfg.UseColors),
			fmtFloat(report.FirstHalfAvg),
			fmtFloat(report.SecondHalfAvg),
			fmtFloat(report.ChangePercent)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration)
	return err
}

// PrintPeriodComparison outputs the period-over-period deltas.
func PrintPeriodComparison(cmp schema.PeriodComparison, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSONReport(cmp, cfg)
	case schema.CSVOut:
		return writePeriodComparisonCSV(cmp, cfg)
	case schema.ParquetOut:
		return errParquetUnsupported("period comparison")
	default:
		return writeTableReport(cfg, func(w io.Writer) error {
			return writePeriodComparisonTable(cmp, cfg, duration, w)
		})
	}
}

func writePeriodComparisonCSV(cmp schema.PeriodComparison, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)
	header := []string{
		"period", "start", "end", "total_records", "average_rating", "success_rate",
	}
	return writeCSVReport(header, cfg, func(w *csv.Writer) error {
		for _, row := range []struct {
			name    string
			metrics schema.WindowMetrics
		}{
			{"current", cmp.Current},
			{"previous", cmp.Previous},
		} {
			rec := []string{
				row.name,
				row.metrics.Start.Format(contract.DateTimeFormat),
				row.metrics.End.Format(contract.DateTimeFormat),
				strconv.Itoa(row.metrics.TotalRecords),
				fmtFloat(row.metrics.AverageRating),
				fmtFloat(row.metrics.SuccessRate),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writePeriodComparisonTable(cmp schema.PeriodComparison, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Period", "Records", "Avg Rating", "Success Rate"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	data := [][]string{
		{"Current", strconv.Itoa(cmp.Current.TotalRecords),
			fmtFloat(cmp.Current.AverageRating), formatPercent(cmp.Current.SuccessRate)},
		{"Previous", strconv.Itoa(cmp.Previous.TotalRecords),
			fmtFloat(cmp.Previous.AverageRating), formatPercent(cmp.Previous.SuccessRate)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer,
		"Deltas: rating %+.2f, success rate %+.1f%%, volume %+d\n",
		cmp.RatingDelta, cmp.SuccessRateDelta*100, cmp.VolumeDelta); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer, cmp.Summary); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration)
	return err
}
