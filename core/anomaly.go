package core

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/qualens/qualens/core/stat"
	"github.com/qualens/qualens/schema"
)

// minAnomalyRecords is the smallest snapshot the detectors run over.
// Anything smaller yields an explicit insufficient-data report.
const minAnomalyRecords = 5

// Z-score detector bands.
const (
	zScoreFlag     = 3.0
	zScoreHigh     = 3.5
	zScoreCritical = 4.0
)

// Temporal detector parameters: a jump of at least 2 rating points within
// less than one hour between adjacent records.
const (
	temporalJump   = 2.0
	temporalWindow = time.Hour
)

// Sustained degradation parameters: a trailing 5-point window whose average
// sits at least 1.0 below the preceding 5-point window.
const (
	degradationWindow   = 5
	degradationDrop     = 1.0
	degradationCritical = 2.0
)

// DetectAnomalies runs four independent passes over the same time-ordered
// snapshot and merges the hits by record id, keeping the single
// highest-severity classification per record. Output is sorted newest-first.
func DetectAnomalies(points []schema.TimeSeriesPoint, start, end time.Time) schema.AnomalyReport {
	report := schema.AnomalyReport{
		Start:           start,
		End:             end,
		RecordsAnalyzed: len(points),
		Anomalies:       []schema.Anomaly{},
		SeverityCounts:  map[schema.Severity]int{},
	}
	if len(points) < minAnomalyRecords {
		report.InsufficientData = true
		report.Insights = []string{fmt.Sprintf(
			"Not enough data for anomaly detection: %d records found, %d required",
			len(points), minAnomalyRecords)}
		return report
	}

	var found []schema.Anomaly
	found = append(found, detectStatisticalOutliers(points)...)
	found = append(found, detectIQROutliers(points)...)
	found = append(found, detectTemporalJumps(points)...)
	found = append(found, detectSustainedDegradation(points)...)

	merged := mergeAnomalies(found)
	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].Timestamp.Equal(merged[j].Timestamp) {
			return merged[i].Timestamp.After(merged[j].Timestamp)
		}
		return merged[i].RecordID < merged[j].RecordID
	})

	report.Anomalies = merged
	report.AnomaliesDetected = len(merged)
	for _, a := range merged {
		report.SeverityCounts[a.Severity]++
	}
	report.Insights = anomalyInsights(report)
	return report
}

// detectStatisticalOutliers flags points whose rating z-score exceeds 3.
// Zero variance means no point can be flagged, whatever its value.
func detectStatisticalOutliers(points []schema.TimeSeriesPoint) []schema.Anomaly {
	ratings := pointRatings(points)
	mean := stat.Mean(ratings)
	stddev := stat.StdDev(ratings)
	if stddev == 0 {
		return nil
	}

	var anomalies []schema.Anomaly
	for _, p := range points {
		z := stat.ZScore(p.Rating, mean, stddev)
		abs := math.Abs(z)
		if abs <= zScoreFlag {
			continue
		}
		anomalies = append(anomalies, schema.Anomaly{
			RecordID:     p.RecordID,
			Timestamp:    p.Timestamp,
			Detector:     schema.DetectorStatisticalOutlier,
			Severity:     zScoreSeverity(abs),
			Observed:     p.Rating,
			ExpectedLow:  mean - zScoreFlag*stddev,
			ExpectedHigh: mean + zScoreFlag*stddev,
			Deviation:    abs,
			Factors: []string{fmt.Sprintf(
				"Rating %.1f sits %.2f standard deviations from the window mean %.2f",
				p.Rating, abs, mean)},
			Action: "Review the interaction for data entry errors or an unusual conversation",
		})
	}
	return anomalies
}

func zScoreSeverity(absZ float64) schema.Severity {
	switch {
	case absZ > zScoreCritical:
		return schema.SeverityCritical
	case absZ > zScoreHigh:
		return schema.SeverityHigh
	default:
		return schema.SeverityLow
	}
}

// detectIQROutliers flags points strictly outside the Tukey fences.
// Severity scales with the distance from the nearer fence.
func detectIQROutliers(points []schema.TimeSeriesPoint) []schema.Anomaly {
	ratings := pointRatings(points)
	sort.Float64s(ratings)
	q1, q3, lower, upper := stat.IQRFences(ratings)
	iqr := q3 - q1

	var anomalies []schema.Anomaly
	for _, p := range points {
		var distance float64
		switch {
		case p.Rating < lower:
			distance = lower - p.Rating
		case p.Rating > upper:
			distance = p.Rating - upper
		default:
			continue
		}
		anomalies = append(anomalies, schema.Anomaly{
			RecordID:     p.RecordID,
			Timestamp:    p.Timestamp,
			Detector:     schema.DetectorIQROutlier,
			Severity:     iqrSeverity(distance, iqr),
			Observed:     p.Rating,
			ExpectedLow:  lower,
			ExpectedHigh: upper,
			Deviation:    distance,
			Factors: []string{fmt.Sprintf(
				"Rating %.1f falls %.2f outside the interquartile fence [%.2f, %.2f]",
				p.Rating, distance, lower, upper)},
			Action: "Inspect the record against its quartile neighbors",
		})
	}
	return anomalies
}

func iqrSeverity(distance, iqr float64) schema.Severity {
	switch {
	case distance > iqr && iqr > 0:
		return schema.SeverityHigh
	case distance > iqr/2 && iqr > 0:
		return schema.SeverityMedium
	case iqr == 0:
		// Degenerate spread: any point outside the collapsed fence is notable.
		return schema.SeverityHigh
	default:
		return schema.SeverityLow
	}
}

// detectTemporalJumps scans adjacent pairs for rating swings of 2+ points
// within an hour. Drops are critical; spikes are flagged at medium since a
// sudden rise usually signals a data artifact rather than a genuine win.
func detectTemporalJumps(points []schema.TimeSeriesPoint) []schema.Anomaly {
	var anomalies []schema.Anomaly
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		gap := cur.Timestamp.Sub(prev.Timestamp)
		if gap >= temporalWindow {
			continue
		}
		delta := cur.Rating - prev.Rating
		if math.Abs(delta) < temporalJump {
			continue
		}

		a := schema.Anomaly{
			RecordID:     cur.RecordID,
			Timestamp:    cur.Timestamp,
			Observed:     cur.Rating,
			ExpectedLow:  prev.Rating - temporalJump,
			ExpectedHigh: prev.Rating + temporalJump,
			Deviation:    math.Abs(delta),
		}
		if delta < 0 {
			a.Detector = schema.DetectorSuddenDrop
			a.Severity = schema.SeverityCritical
			a.Factors = []string{fmt.Sprintf(
				"Rating fell from %.1f to %.1f within %s", prev.Rating, cur.Rating, gap.Round(time.Minute))}
			a.Action = "Check for a regression deployed or a provider incident in this window"
		} else {
			a.Detector = schema.DetectorSuddenSpike
			a.Severity = schema.SeverityMedium
			a.Factors = []string{fmt.Sprintf(
				"Rating jumped from %.1f to %.1f within %s", prev.Rating, cur.Rating, gap.Round(time.Minute))}
			a.Action = "Verify the rating source; sudden rises often indicate a data artifact"
		}
		anomalies = append(anomalies, a)
	}
	return anomalies
}

// detectSustainedDegradation slides a 5-point window against the 5 points
// before it and flags the trailing point when the average falls 1.0 or more.
func detectSustainedDegradation(points []schema.TimeSeriesPoint) []schema.Anomaly {
	var anomalies []schema.Anomaly
	for i := 2 * degradationWindow; i <= len(points); i++ {
		prevAvg := stat.Mean(pointRatings(points[i-2*degradationWindow : i-degradationWindow]))
		curAvg := stat.Mean(pointRatings(points[i-degradationWindow : i]))
		drop := prevAvg - curAvg
		if drop < degradationDrop {
			continue
		}
		severity := schema.SeverityHigh
		if drop >= degradationCritical {
			severity = schema.SeverityCritical
		}
		last := points[i-1]
		anomalies = append(anomalies, schema.Anomaly{
			RecordID:     last.RecordID,
			Timestamp:    last.Timestamp,
			Detector:     schema.DetectorSustainedDegradation,
			Severity:     severity,
			Observed:     curAvg,
			ExpectedLow:  prevAvg - degradationDrop,
			ExpectedHigh: prevAvg + degradationDrop,
			Deviation:    drop,
			Factors: []string{fmt.Sprintf(
				"Average rating over the last %d records dropped from %.2f to %.2f",
				degradationWindow, prevAvg, curAvg)},
			Action: "Quality has been degrading across multiple interactions; audit recent changes",
		})
	}
	return anomalies
}

// mergeAnomalies deduplicates hits by record id, keeping the single
// highest-severity classification. The first detector to reach a severity
// wins ties, which keeps the pass order deterministic.
func mergeAnomalies(anomalies []schema.Anomaly) []schema.Anomaly {
	byRecord := make(map[string]schema.Anomaly, len(anomalies))
	order := make([]string, 0, len(anomalies))
	for _, a := range anomalies {
		existing, ok := byRecord[a.RecordID]
		if !ok {
			byRecord[a.RecordID] = a
			order = append(order, a.RecordID)
			continue
		}
		if a.Severity.Rank() > existing.Severity.Rank() {
			byRecord[a.RecordID] = a
		}
	}
	merged := make([]schema.Anomaly, 0, len(order))
	for _, id := range order {
		merged = append(merged, byRecord[id])
	}
	return merged
}

func anomalyInsights(report schema.AnomalyReport) []string {
	var insights []string
	if report.AnomaliesDetected == 0 {
		return []string{"No anomalies detected in this window"}
	}
	insights = append(insights, fmt.Sprintf(
		"%d of %d records flagged as anomalous", report.AnomaliesDetected, report.RecordsAnalyzed))
	if n := report.SeverityCounts[schema.SeverityCritical]; n > 0 {
		insights = append(insights, fmt.Sprintf("%d critical anomalies require immediate attention", n))
	}

	detectorCounts := make(map[schema.DetectorType]int)
	for _, a := range report.Anomalies {
		detectorCounts[a.Detector]++
	}
	if n := detectorCounts[schema.DetectorSustainedDegradation]; n > 0 {
		insights = append(insights, "Sustained degradation detected; quality is trending down across consecutive interactions")
	}
	if n := detectorCounts[schema.DetectorSuddenDrop]; n > 0 {
		insights = append(insights, fmt.Sprintf("%d sudden quality drops occurred within short time spans", n))
	}
	return insights
}
