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

// PrintPrediction outputs the forecast report with its risk score.
func PrintPrediction(report schema.PredictionReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSONReport(report, cfg)
	case schema.CSVOut:
		return writePredictionCSV(report, cfg)
	case schema.ParquetOut:
		return errParquetUnsupported("prediction")
	default:
		return writeTableReport(cfg, func(w io.Writer) error {
			return writePredictionTable(report, cfg, duration, w)
		})
	}
}

func writePredictionCSV(report schema.PredictionReport, cfg *contract.Config) error {
	header := []string{
		"horizon_days", "predicted_rating", "confidence", "interval_low", "interval_high",
	}
	return writeCSVReport(header, cfg, func(w *csv.Writer) error {
		for _, p := range report.Predictions {
			rec := []string{
				strconv.Itoa(p.HorizonDays),
				fmt.Sprintf("%.2f", p.PredictedRating),
				fmt.Sprintf("%.2f", p.Confidence),
				fmt.Sprintf("%.2f", p.IntervalLow),
				fmt.Sprintf("%.2f", p.IntervalHigh),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writePredictionTable(report schema.PredictionReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if report.InsufficientData {
		for _, factor := range report.Risk.Factors {
			if _, err := fmt.Fprintln(writer, factor); err != nil {
				return err
			}
		}
		return nil
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Horizon", "Predicted Rating", "Confidence", "Interval"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, p := range report.Predictions {
		data = append(data, []string{
			fmt.Sprintf("%dd", p.HorizonDays),
			fmt.Sprintf("%.2f", p.PredictedRating),
			formatPercent(p.Confidence),
			fmt.Sprintf("[%.2f, %.2f]", p.IntervalLow, p.IntervalHigh),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer,
		"Model fit R² %.2f over %d records, 14-day slope %+.3f, recent error rate %s\n",
		report.ModelAccuracy, report.RecordsAnalyzed, report.TrendSlope,
		formatPercent(report.RecentErrorRate)); err != nil {
		return err
	}
	if err := writeRiskSummary(report.Risk, cfg, writer); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration)
	return err
}

// PrintRisk outputs only the composite risk score.
func PrintRisk(report schema.PredictionReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSONReport(report.Risk, cfg)
	case schema.CSVOut:
		return writeRiskCSV(report.Risk, cfg)
	case schema.ParquetOut:
		return errParquetUnsupported("risk")
	default:
		return writeTableReport(cfg, func(w io.Writer) error {
			if report.InsufficientData {
				for _, factor := range report.Risk.Factors {
					if _, err := fmt.Fprintln(w, factor); err != nil {
						return err
					}
				}
				return nil
			}
			if err := writeRiskSummary(report.Risk, cfg, w); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Analysis completed in %v\n", duration)
			return err
		})
	}
}

func writeRiskCSV(risk schema.RiskScore, cfg *contract.Config) error {
	header := []string{"score", "level", "probability"}
	return writeCSVReport(header, cfg, func(w *csv.Writer) error {
		return w.Write([]string{
			fmt.Sprintf("%.0f", risk.Score),
			string(risk.Level),
			fmt.Sprintf("%.2f", risk.Probability),
		})
	})
}

func writeRiskSummary(risk schema.RiskScore, cfg *contract.Config, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Risk: %.0f/100 (%s, probability %.2f)\n",
		risk.Score, contract.GetRiskLabel(risk.Level, cfg.UseColors),
		risk.Probability); err != nil {
		return err
	}
	if err := writeBulletList(writer, risk.Factors, cfg); err != nil {
		return err
	}
	return writeBulletList(writer, risk.Recommendations, cfg)
}
