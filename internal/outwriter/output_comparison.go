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

// PrintModelComparison outputs the model group rankings.
func PrintModelComparison(report schema.ModelComparisonReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSONReport(report, cfg)
	case schema.CSVOut:
		return writeModelComparisonCSV(report, cfg)
	case schema.ParquetOut:
		return errParquetUnsupported("model comparison")
	default:
		return writeTableReport(cfg, func(w io.Writer) error {
			return writeModelComparisonTable(report, cfg, duration, w)
		})
	}
}

func writeModelComparisonCSV(report schema.ModelComparisonReport, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)
	header := []string{
		"model", "usage_count", "average_rating", "success_rate",
		"average_cost", "average_latency_ms", "quality_per_dollar", "trend",
	}
	return writeCSVReport(header, cfg, func(w *csv.Writer) error {
		for _, g := range report.Groups {
			rec := []string{
				g.Key,
				strconv.Itoa(g.UsageCount),
				fmtFloat(g.AverageRating),
				fmtFloat(g.SuccessRate),
				fmt.Sprintf("%.6f", g.AverageCost),
				fmtFloat(g.AverageLatencyMs),
				fmtFloat(g.QualityPerDollar),
				string(g.Trend),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeModelComparisonTable(report schema.ModelComparisonReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	table := tablewriter.NewWriter(writer)
	headers := []string{"Rank", "Model", "Usage", "Avg Rating", "Success Rate", "Trend"}
	if cfg.Detail {
		headers = append(headers, "Avg Cost", "Avg Latency", "Quality/$")
	}
	table.Header(headers)
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for i, g := range report.Groups {
		row := []string{
			strconv.Itoa(i + 1),
			g.Key,
			strconv.Itoa(g.UsageCount),
			fmtFloat(g.AverageRating),
			formatPercent(g.SuccessRate),
			contract.GetTrendLabel(g.Trend, cfg.UseColors),
		}
		if cfg.Detail {
			row = append(row,
				fmt.Sprintf("$%.6f", g.AverageCost),
				fmt.Sprintf("%.0fms", g.AverageLatencyMs),
				fmtFloat(g.QualityPerDollar),
			)
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if report.BestQuality != "" {
		if _, err := fmt.Fprintf(writer,
			"Best quality: %s | Best cost: %s | Best value: %s\n",
			report.BestQuality, orNone(report.BestCost), orNone(report.BestValue)); err != nil {
			return err
		}
	}
	if err := writeBulletList(writer, report.Recommendations, cfg); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration)
	return err
}

// PrintToolImpact outputs the per-tool quality effect report.
func PrintToolImpact(report schema.ToolImpactReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSONReport(report, cfg)
	case schema.CSVOut:
		return writeToolImpactCSV(report, cfg)
	case schema.ParquetOut:
		return errParquetUnsupported("tool impact")
	default:
		return writeTableReport(cfg, func(w io.Writer) error {
			return writeToolImpactTable(report, cfg, duration, w)
		})
	}
}

func writeToolImpactCSV(report schema.ToolImpactReport, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)
	header := []string{
		"tool", "usage_count", "average_rating", "success_rate", "impact", "significance",
	}
	return writeCSVReport(header, cfg, func(w *csv.Writer) error {
		for _, imp := range report.Impacts {
			rec := []string{
				imp.Tool,
				strconv.Itoa(imp.UsageCount),
				fmtFloat(imp.AverageRating),
				fmtFloat(imp.SuccessRate),
				fmt.Sprintf("%.4f", imp.Impact),
				string(imp.Significance),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeToolImpactTable(report schema.ToolImpactReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Tool", "Usage", "Avg Rating", "Success Rate", "Impact", "Significance"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, imp := range report.Impacts {
		data = append(data, []string{
			imp.Tool,
			strconv.Itoa(imp.UsageCount),
			fmtFloat(imp.AverageRating),
			formatPercent(imp.SuccessRate),
			fmt.Sprintf("%+.1f%%", imp.Impact*100),
			string(imp.Significance),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer,
		"Baseline (no tools): %s average rating over %d records\n",
		fmtFloat(report.BaselineRating), report.BaselineCount); err != nil {
		return err
	}
	if err := writeBulletList(writer, report.Recommendations, cfg); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration)
	return err
}

// writeBulletList prints free-text lines truncated to the terminal width.
func writeBulletList(writer io.Writer, lines []string, cfg *contract.Config) error {
	width := GetMaxTextWidth(cfg)
	for _, line := range lines {
		if _, err := fmt.Fprintf(writer, "- %s\n", schema.TruncateText(line, width)); err != nil {
			return err
		}
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
