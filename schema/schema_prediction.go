package schema

// QualityPrediction forecasts quality N days ahead. The predicted rating is
// clamped to [1,5] and confidence decays linearly to 0 at a 60-day horizon.
type QualityPrediction struct {
	HorizonDays     int     `json:"horizon_days"`
	PredictedRating float64 `json:"predicted_rating"`
	Confidence      float64 `json:"confidence"` // In [0,1]
	IntervalLow     float64 `json:"interval_low"`
	IntervalHigh    float64 `json:"interval_high"`
}

// RiskScore is the 0-100 composite heuristic combining trend, forecast,
// error-rate and confidence signals.
type RiskScore struct {
	Score           float64   `json:"score"`       // In [0,100]
	Level           RiskLevel `json:"level"`       // critical >=75, high >=50, medium >=25, else low
	Probability    float64    `json:"probability"` // Score / 100
	Factors         []string  `json:"factors,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
}

// PredictionReport carries the trained model summary, forward forecasts and
// the derived risk score. Fewer than the minimum required records yields an
// explicit zeroed report with InsufficientData set.
type PredictionReport struct {
	RecordsAnalyzed  int                 `json:"records_analyzed"`
	ModelAccuracy    float64             `json:"model_accuracy"` // In-sample R-squared
	TrendSlope       float64             `json:"trend_slope"`    // 14-day trailing slope
	RecentErrorRate  float64             `json:"recent_error_rate"`
	Predictions      []QualityPrediction `json:"predictions"`
	Risk             RiskScore           `json:"risk"`
	InsufficientData bool                `json:"insufficient_data"`
}
