package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/core"
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds the dependencies shared by all MCP tool handlers.
type toolHandler struct {
	baseCfg   *contract.Config
	store     contract.RecordStore
	generator contract.TextGenerator
	catalog   schema.Catalog
}

// handleExtractFileMetrics scores one file on every metric in the catalog and
// persists the file record plus its observations.
func (h *toolHandler) handleExtractFileMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath := request.GetString("file_path", "")
	if filePath == "" {
		return mcp.NewToolResultError("file_path is required"), nil
	}
	content := request.GetString("content", "")
	if content == "" {
		return mcp.NewToolResultError("content is required"), nil
	}

	cfg := h.baseCfg.Clone()
	if project := request.GetString("project", ""); project != "" {
		cfg.ProjectName = project
	}

	file := schema.NewFileRecord(filePath, content, cfg.ProjectName, cfg.UserEmail, uuid.New())
	if err := h.store.InsertFile(ctx, file); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("insert failed: %v", err)), nil
	}

	extractor := core.NewExtractor(h.generator, h.store, h.catalog, cfg.MaxAttempts, cfg.Workers)
	observations, err := extractor.ExtractFile(ctx, file)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}

	result := map[string]any{
		"file_id":      file.FileID,
		"loc":          file.LOC,
		"observations": observations,
	}
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetProjectTrend builds the per-metric daily series for a project.
func (h *toolHandler) handleGetProjectTrend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project := request.GetString("project", "")
	if project == "" {
		return mcp.NewToolResultError("project is required"), nil
	}

	cfg := h.baseCfg.Clone()
	if limit := request.GetInt("key_file_limit", 0); limit > 0 {
		cfg.KeyFileLimit = limit
	}

	series, err := core.ProjectSeries(ctx, h.store, h.catalog, cfg.UserEmail, project, cfg.KeyFileLimit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal series: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleListMetrics returns the rubric catalog.
func (h *toolHandler) handleListMetrics(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type metricInfo struct {
		Metric      schema.MetricName `json:"metric"`
		Label       string            `json:"label"`
		Description string            `json:"description"`
	}
	metrics := make([]metricInfo, 0, len(h.catalog))
	for _, m := range h.catalog.Metrics() {
		metrics = append(metrics, metricInfo{Metric: m, Label: m.Label(), Description: h.catalog[m]})
	}

	jsonData, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal metrics: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
