package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/schema"
)

// PrintSentiment outputs the aggregated sentiment report.
func PrintSentiment(report schema.SentimentReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSONReport(report, cfg)
	case schema.CSVOut:
		return writeSentimentCSV(report, cfg)
	case schema.ParquetOut:
		return errParquetUnsupported("sentiment")
	default:
		return writeTableReport(cfg, func(w io.Writer) error {
			return writeSentimentTable(report, cfg, duration, w)
		})
	}
}

func writeSentimentCSV(report schema.SentimentReport, cfg *contract.Config) error {
	header := []string{"bucket", "count"}
	rows := [][]string{
		{string(schema.SentimentVeryPositive), strconv.Itoa(report.Distribution.VeryPositive)},
		{string(schema.SentimentPositive), strconv.Itoa(report.Distribution.Positive)},
		{string(schema.SentimentNeutral), strconv.Itoa(report.Distribution.Neutral)},
		{string(schema.SentimentNegative), strconv.Itoa(report.Distribution.Negative)},
		{string(schema.SentimentVeryNegative), strconv.Itoa(report.Distribution.VeryNegative)},
	}
	return writeCSVReport(header, cfg, func(w *csv.Writer) error {
		for _, rec := range rows {
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeSentimentTable(report schema.SentimentReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Sentiment", "Count"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	data := [][]string{
		{"very positive", strconv.Itoa(report.Distribution.VeryPositive)},
		{"positive", strconv.Itoa(report.Distribution.Positive)},
		{"neutral", strconv.Itoa(report.Distribution.Neutral)},
		{"negative", strconv.Itoa(report.Distribution.Negative)},
		{"very negative", strconv.Itoa(report.Distribution.VeryNegative)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer,
		"%d records with feedback text, average sentiment %+.2f\n",
		report.AnalyzedRecords, report.AverageScore); err != nil {
		return err
	}
	if len(report.EmotionCounts) > 0 {
		if _, err := fmt.Fprintf(writer, "Emotions: %s\n",
			formatCountMap(report.EmotionCounts)); err != nil {
			return err
		}
	}
	if len(report.PatternCounts) > 0 {
		if _, err := fmt.Fprintf(writer, "Phrase patterns: %s\n",
			formatCountMap(report.PatternCounts)); err != nil {
			return err
		}
	}
	if cfg.Detail {
		if err := writeSentimentResults(report.Results, cfg, writer); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration)
	return err
}

func writeSentimentResults(results []schema.SentimentResult, cfg *contract.Config, writer io.Writer) error {
	limit := len(results)
	if cfg.ResultLimit > 0 && limit > cfg.ResultLimit {
		limit = cfg.ResultLimit
	}
	for _, r := range results[:limit] {
		line := fmt.Sprintf("%s: %+.2f (%s, confidence %.2f)", r.RecordID, r.Score, r.Bucket, r.Confidence)
		if len(r.Emotions) > 0 {
			line += " " + strings.Join(r.Emotions, ",")
		}
		if _, err := fmt.Fprintf(writer, "- %s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// formatCountMap renders a count map as "key=N" pairs, highest first.
func formatCountMap(counts map[string]int) string {
	type pair struct {
		key   string
		count int
	}
	pairs := make([]pair, 0, len(counts))
	for k, v := range counts {
		pairs = append(pairs, pair{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].key < pairs[j].key
	})
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%d", p.key, p.count))
	}
	return strings.Join(parts, ", ")
}

// PrintCategories outputs the feedback category breakdown.
func PrintCategories(stats []schema.FeedbackCategoryStat, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSONReport(stats, cfg)
	case schema.CSVOut:
		return writeCategoriesCSV(stats, cfg)
	case schema.ParquetOut:
		return errParquetUnsupported("categories")
	default:
		return writeTableReport(cfg, func(w io.Writer) error {
			return writeCategoriesTable(stats, cfg, duration, w)
		})
	}
}

func writeCategoriesCSV(stats []schema.FeedbackCategoryStat, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)
	header := []string{"category", "mentions", "average_rating"}
	return writeCSVReport(header, cfg, func(w *csv.Writer) error {
		for _, s := range stats {
			rec := []string{s.Category, strconv.Itoa(s.Mentions), fmtFloat(s.AverageRating)}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCategoriesTable(stats []schema.FeedbackCategoryStat, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Category", "Mentions", "Avg Rating"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, s := range stats {
		data = append(data, []string{
			s.Category,
			strconv.Itoa(s.Mentions),
			fmtFloat(s.AverageRating),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration)
	return err
}
