// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/qualens/qualens/core"
	"github.com/qualens/qualens/internal/contract"
)

// NewMCPServer initializes and configures the Qualens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, env *core.Env) *server.MCPServer {
	s := server.NewMCPServer(
		"Qualens Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		env:     env,
	}

	// Parameters shared by every analysis tool
	commonOpts := []mcp.ToolOption{
		mcp.WithString("owner", mcp.Description("Owner id whose evaluation records are analyzed."), mcp.Required()),
		mcp.WithString("period", mcp.Description("Analysis window shorthand (e.g. '7d', '30d', 'week', 'month', 'quarter'). Defaults to the server's configured window.")),
		mcp.WithString("model", mcp.Description("Restrict the analysis to one model identifier.")),
		mcp.WithString("conversation", mcp.Description("Restrict the analysis to one conversation id.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	}

	newTool := func(name, description string, extra ...mcp.ToolOption) mcp.Tool {
		opts := append([]mcp.ToolOption{mcp.WithDescription(description)}, commonOpts...)
		opts = append(opts, extra...)
		return mcp.NewTool(name, opts...)
	}

	// --- 1. Tool: get_metrics ---
	s.AddTool(newTool("get_metrics",
		"Compute window quality metrics: record counts, rating distribution, average rating, success rate.",
	), h.handleGetMetrics)

	// --- 2. Tool: get_quality_trends ---
	s.AddTool(newTool("get_quality_trends",
		"Classify the quality trend over daily rating averages as improving, declining, or stable.",
		mcp.WithNumber("min_days", mcp.Description("Minimum distinct days before a trend is reported (default 3).")),
		mcp.WithNumber("threshold", mcp.Description("Fractional half-over-half change separating improving/declining from stable (default 0.10).")),
	), h.handleGetQualityTrends)

	// --- 3. Tool: compare_periods ---
	s.AddTool(newTool("compare_periods",
		"Compare the analysis window against the equal-length window immediately preceding it.",
	), h.handleComparePeriods)

	// --- 4. Tool: compare_models ---
	s.AddTool(newTool("compare_models",
		"Rank models by quality, cost, and quality-per-dollar over the analysis window.",
	), h.handleCompareModels)

	// --- 5. Tool: analyze_tool_impact ---
	s.AddTool(newTool("analyze_tool_impact",
		"Measure each tool's quality impact against the no-tool baseline.",
	), h.handleAnalyzeToolImpact)

	// --- 6. Tool: detect_anomalies ---
	s.AddTool(newTool("detect_anomalies",
		"Detect rating anomalies via z-score, IQR, temporal jump, and sustained degradation passes.",
	), h.handleDetectAnomalies)

	// --- 7. Tool: predict_quality ---
	s.AddTool(newTool("predict_quality",
		"Forecast quality ratings over configurable horizons and score the composite quality risk.",
		mcp.WithString("horizons", mcp.Description("Comma-separated forecast horizons in days (default '7,14,30').")),
	), h.handlePredictQuality)

	// --- 8. Tool: get_risk_score ---
	s.AddTool(newTool("get_risk_score",
		"Score the composite quality risk (0-100) with contributing factors and recommendations.",
	), h.handleGetRiskScore)

	// --- 9. Tool: analyze_sentiment ---
	s.AddTool(newTool("analyze_sentiment",
		"Run heuristic sentiment, emotion, and phrase-pattern analysis over feedback text.",
		mcp.WithBoolean("include_results", mcp.Description("Include per-record sentiment results in the report.")),
	), h.handleAnalyzeSentiment)

	// --- 10. Tool: get_feedback_categories ---
	s.AddTool(newTool("get_feedback_categories",
		"Count feedback category mentions (performance, accuracy, completeness, clarity, helpfulness, errors) correlated with quality.",
	), h.handleGetFeedbackCategories)

	// --- 11. Tool: analyze_error_patterns ---
	s.AddTool(newTool("analyze_error_patterns",
		"Group errors by type with frequency, average rating, fallback rate, and severity.",
	), h.handleAnalyzeErrorPatterns)

	// --- 12. Tool: analyze_temporal_patterns ---
	s.AddTool(newTool("analyze_temporal_patterns",
		"Break quality down by hour of day and day of week (UTC).",
	), h.handleAnalyzeTemporalPatterns)

	return s
}

// StartMCPServer starts the Qualens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, env *core.Env) error {
	s := NewMCPServer(baseCfg, env)
	return server.ServeStdio(s)
}
