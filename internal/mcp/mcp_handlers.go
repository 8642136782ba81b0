package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/qualens/qualens/core"
	"github.com/qualens/qualens/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	env     *core.Env
}

// configFor clones the base config and applies the request parameters every
// analysis tool shares. Invalid parameters are rejected before any fetch.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()

	if owner := strings.TrimSpace(request.GetString("owner", "")); owner != "" {
		cfg.OwnerID = owner
	}
	if cfg.OwnerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	if p := request.GetString("period", ""); p != "" {
		lookback, err := contract.ParsePeriod(p)
		if err != nil {
			return nil, fmt.Errorf("invalid period '%s': %w", p, err)
		}
		now := time.Now()
		cfg.EndTime = now
		cfg.StartTime = now.Add(-lookback)
	}

	if m := request.GetString("model", ""); m != "" {
		cfg.Model = m
	}
	if c := request.GetString("conversation", ""); c != "" {
		cfg.ConversationID = c
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	return cfg, nil
}

// jsonResult marshals a report into an MCP text result.
func jsonResult(report any) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.GetWindowMetrics(ctx, cfg, h.env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleGetQualityTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if d := request.GetInt("min_days", 0); d > 0 {
		cfg.TrendMinDays = d
	}
	if th := request.GetFloat("threshold", 0); th > 0 {
		cfg.TrendThreshold = th
	}

	report, err := core.GetQualityTrends(ctx, cfg, h.env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleComparePeriods(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.GetPeriodComparison(ctx, cfg, h.env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleCompareModels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.GetModelComparison(ctx, cfg, h.env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleAnalyzeToolImpact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.GetToolImpact(ctx, cfg, h.env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleDetectAnomalies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.GetAnomalyReport(ctx, cfg, h.env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("detection failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handlePredictQuality(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if hs := request.GetString("horizons", ""); hs != "" {
		horizons, err := parseHorizons(hs)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid horizons: %v", err)), nil
		}
		cfg.Horizons = horizons
	}

	report, err := core.GetPredictionReport(ctx, cfg, h.env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("prediction failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleGetRiskScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.GetPredictionReport(ctx, cfg, h.env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("risk scoring failed: %v", err)), nil
	}
	return jsonResult(report.Risk)
}

func (h *toolHandler) handleAnalyzeSentiment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	cfg.Detail = request.GetBool("include_results", cfg.Detail)

	report, err := core.GetSentimentReport(ctx, cfg, h.env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleGetFeedbackCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	stats, err := core.GetCategoryStats(ctx, cfg, h.env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(stats)
}

func (h *toolHandler) handleAnalyzeErrorPatterns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.GetErrorPatternReport(ctx, cfg, h.env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleAnalyzeTemporalPatterns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.GetTemporalReport(ctx, cfg, h.env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(report)
}

// parseHorizons parses a comma-separated list of positive day counts.
func parseHorizons(s string) ([]int, error) {
	var horizons []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		days, err := strconv.Atoi(part)
		if err != nil || days <= 0 {
			return nil, fmt.Errorf("'%s' must be a positive day count", part)
		}
		horizons = append(horizons, days)
	}
	if len(horizons) == 0 {
		return nil, fmt.Errorf("at least one day count is required")
	}
	return horizons, nil
}
