package schema

// GroupPerformance aggregates quality, cost and reliability for one model or
// tool group. One record may contribute to multiple tool groups.
type GroupPerformance struct {
	Key              string     `json:"key"`
	UsageCount       int        `json:"usage_count"`
	AverageRating    float64    `json:"average_rating"`
	SuccessRate      float64    `json:"success_rate"`
	AverageCost      float64    `json:"average_cost"`    // Per-interaction cost in dollars
	AverageLatencyMs float64    `json:"average_latency_ms"`
	QualityPerDollar float64    `json:"quality_per_dollar"` // 0 when cost is 0, never NaN
	Trend            TrendLabel `json:"trend"`
}

// ModelComparisonReport ranks model groups by quality, cost and value.
type ModelComparisonReport struct {
	Groups          []GroupPerformance `json:"groups"`
	BestQuality     string             `json:"best_quality"`
	BestCost        string             `json:"best_cost"`
	BestValue       string             `json:"best_value"`
	Recommendations []string           `json:"recommendations"`
}

// ToolImpact measures one tool's quality effect against the no-tool baseline.
type ToolImpact struct {
	Tool          string       `json:"tool"`
	UsageCount    int          `json:"usage_count"`
	AverageRating float64      `json:"average_rating"`
	SuccessRate   float64      `json:"success_rate"`
	Impact        float64      `json:"impact"` // (toolAvg - baseline) / baseline
	Significance  Significance `json:"significance"`
}

// ToolImpactReport compares per-tool quality against records that used no
// tools at all.
type ToolImpactReport struct {
	BaselineRating  float64      `json:"baseline_rating"`
	BaselineCount   int          `json:"baseline_count"`
	Impacts         []ToolImpact `json:"impacts"`
	Recommendations []string     `json:"recommendations"`
}
