package schema

import "time"

// QualityDistribution counts records by exact integer rating.
type QualityDistribution struct {
	Rating1 int `json:"rating_1"`
	Rating2 int `json:"rating_2"`
	Rating3 int `json:"rating_3"`
	Rating4 int `json:"rating_4"`
	Rating5 int `json:"rating_5"`
}

// EvaluationBreakdown splits a window into successful, failed and
// unevaluated records. A record is unevaluated when its success flag
// was never set.
type EvaluationBreakdown struct {
	Successful  int `json:"successful"`
	Failed      int `json:"failed"`
	Unevaluated int `json:"unevaluated"`
}

// WindowMetrics summarizes one analysis window. An empty window yields a
// zeroed struct, never an error.
type WindowMetrics struct {
	Start         time.Time           `json:"start"`
	End           time.Time           `json:"end"`
	TotalRecords  int                 `json:"total_records"`
	AverageRating float64             `json:"average_rating"`
	SuccessRate   float64             `json:"success_rate"`
	Distribution  QualityDistribution `json:"distribution"`
	Breakdown     EvaluationBreakdown `json:"breakdown"`
}

// DailyQuality is the per-calendar-day aggregate used for trend analysis.
type DailyQuality struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
	SuccessRate   float64 `json:"success_rate"`
}

// TrendReport classifies the whole-window quality trend from daily averages.
type TrendReport struct {
	Days          []DailyQuality `json:"days"`
	Trend         TrendLabel     `json:"trend"`
	FirstHalfAvg  float64        `json:"first_half_avg"`
	SecondHalfAvg float64        `json:"second_half_avg"`
	ChangePercent float64        `json:"change_percent"`
	// SufficientData is false when the window spans fewer days than the
	// configured minimum, in which case Trend is forced to stable.
	SufficientData bool `json:"sufficient_data"`
}

// PeriodComparison reports signed deltas between the current window and the
// equal-length window immediately preceding it.
type PeriodComparison struct {
	Current          WindowMetrics `json:"current"`
	Previous         WindowMetrics `json:"previous"`
	RatingDelta      float64       `json:"rating_delta"`
	SuccessRateDelta float64       `json:"success_rate_delta"`
	VolumeDelta      int           `json:"volume_delta"`
	Summary          string        `json:"summary"`
}
