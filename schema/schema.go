// Package schema has configs, models and shared types for all parts of qualens.
package schema

import "time"

// EvaluationRecord is one rated interaction outcome fetched from the record
// store. Records are read-only inputs to the engine; analyzers never mutate
// or persist them.
type EvaluationRecord struct {
	ID             string    // Unique record identifier
	OwnerID        string    // User the interaction belongs to
	ConversationID string    // Optional conversation the interaction belongs to
	Rating         int       // Quality rating from 1 (worst) to 5 (best); 0 means unrated
	Success        *bool     // Whether the interaction succeeded; nil means unevaluated
	Notes          string    // Free-text reviewer notes
	Expected       string    // Free-text expected behavior
	Actual         string    // Free-text actual behavior
	ErrorType      string    // Error classification when the interaction failed
	FallbackUsed   bool      // Whether a fallback model or path was used
	ToolCalls      []ToolCall
	Model          string // Model identifier that served the interaction
	Provider       string // Provider hosting the model
	InputTokens    *int64 // Prompt token count; nil when not recorded
	OutputTokens   *int64 // Completion token count; nil when not recorded
	LatencyMs      *int64 // End-to-end latency; nil when not recorded
	CreatedAt      time.Time
}

// ToolCall is one tool invocation attached to an evaluation record.
type ToolCall struct {
	Name    string
	Success bool
}

// HasError reports whether the record carries an error classification.
func (r *EvaluationRecord) HasError() bool {
	return r.ErrorType != ""
}

// Text concatenates the record's free-text fields for textual analysis.
func (r *EvaluationRecord) Text() string {
	out := r.Notes
	if r.Expected != "" {
		if out != "" {
			out += " "
		}
		out += r.Expected
	}
	if r.Actual != "" {
		if out != "" {
			out += " "
		}
		out += r.Actual
	}
	return out
}

// TimeSeriesPoint projects one evaluation record onto a numeric timeline.
// Points within one analysis call are sorted ascending by timestamp;
// duplicate timestamps are permitted and not collapsed.
type TimeSeriesPoint struct {
	RecordID     string
	Timestamp    time.Time
	Rating       float64
	Success      bool
	HasError     bool
	FallbackUsed bool
	ToolCount    int
}

// RecordFilter narrows the records returned by a record store.
// Start and End bound creation time; zero values mean unbounded.
type RecordFilter struct {
	OwnerID        string
	Start          time.Time
	End            time.Time
	ConversationID string
	Model          string
	MinRating      int
	MaxRating      int
	Limit          int // Maximum records returned; 0 means the store default
}

// StoreStatus describes the state of a record store backend.
type StoreStatus struct {
	Backend      DatabaseBackend
	Location     string
	RecordCount  int64
	OldestRecord time.Time
	NewestRecord time.Time
}
