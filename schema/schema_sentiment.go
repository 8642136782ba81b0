package schema

// SentimentResult scores one record's concatenated free text.
type SentimentResult struct {
	RecordID        string          `json:"record_id"`
	Score           float64         `json:"score"`      // In [-1,1]
	Confidence      float64         `json:"confidence"` // In [0,1]
	Bucket          SentimentBucket `json:"bucket"`
	Emotions        []string        `json:"emotions,omitempty"`
	MatchedPatterns []string        `json:"matched_patterns,omitempty"`
}

// SentimentDistribution buckets per-record scores into five levels.
// The bucket counts sum exactly to the number of records with non-empty text.
type SentimentDistribution struct {
	VeryPositive int `json:"veryPositive"`
	Positive     int `json:"positive"`
	Neutral      int `json:"neutral"`
	Negative     int `json:"negative"`
	VeryNegative int `json:"veryNegative"`
}

// FeedbackCategoryStat correlates one feedback category with quality.
type FeedbackCategoryStat struct {
	Category      string  `json:"category"`
	Mentions      int     `json:"mentions"`
	AverageRating float64 `json:"average_rating"`
}

// SentimentReport aggregates sentiment, emotion and category signals across
// an analysis window.
type SentimentReport struct {
	AnalyzedRecords int                   `json:"analyzed_records"` // Records with non-empty text
	AverageScore    float64               `json:"average_score"`
	Distribution    SentimentDistribution `json:"distribution"`
	EmotionCounts   map[string]int        `json:"emotion_counts"`
	PatternCounts   map[string]int        `json:"pattern_counts"`
	Categories      []FeedbackCategoryStat `json:"categories,omitempty"`
	Results         []SentimentResult     `json:"results,omitempty"`
}

// ErrorPattern aggregates records sharing one error classification.
type ErrorPattern struct {
	ErrorType     string   `json:"error_type"`
	Count         int      `json:"count"`
	AverageRating float64  `json:"average_rating"`
	FallbackRate  float64  `json:"fallback_rate"`
	Severity      Severity `json:"severity"`
}

// ErrorPatternReport groups the window's failures by error type.
type ErrorPatternReport struct {
	TotalErrors int            `json:"total_errors"`
	ErrorRate   float64        `json:"error_rate"`
	Patterns    []ErrorPattern `json:"patterns"`
	Insights    []string       `json:"insights,omitempty"`
}

// TemporalBucket is one hour-of-day or day-of-week aggregate.
type TemporalBucket struct {
	Label         string  `json:"label"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
	SuccessRate   float64 `json:"success_rate"`
}

// TemporalReport breaks quality down by hour of day and day of week.
type TemporalReport struct {
	Hours    []TemporalBucket `json:"hours"`
	Weekdays []TemporalBucket `json:"weekdays"`
	Insights []string         `json:"insights,omitempty"`
}
