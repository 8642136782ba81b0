package schema

import "time"

// Anomaly is one flagged evaluation record. Anomalies are created
// transiently per analysis call and merged across detectors by record id;
// they are never persisted.
type Anomaly struct {
	RecordID     string       `json:"record_id"`
	Timestamp    time.Time    `json:"timestamp"`
	Detector     DetectorType `json:"detector"`
	Severity     Severity     `json:"severity"`
	Observed     float64      `json:"observed"`
	ExpectedLow  float64      `json:"expected_low"`
	ExpectedHigh float64      `json:"expected_high"`
	Deviation    float64      `json:"deviation"`
	Factors      []string     `json:"factors,omitempty"`
	Action       string       `json:"action,omitempty"`
}

// AnomalyReport is the merged output of all detection passes, sorted
// newest-first. Fewer than the minimum required records yields an explicit
// insufficient-data report, not an error.
type AnomalyReport struct {
	Start             time.Time        `json:"start"`
	End               time.Time        `json:"end"`
	RecordsAnalyzed   int              `json:"records_analyzed"`
	AnomaliesDetected int              `json:"anomalies_detected"`
	Anomalies         []Anomaly        `json:"anomalies"`
	SeverityCounts    map[Severity]int `json:"severity_counts"`
	Insights          []string         `json:"insights,omitempty"`
	InsufficientData  bool             `json:"insufficient_data"`
}
