// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the maintainability MCP server
// without starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.RecordStore, generator contract.TextGenerator, catalog schema.Catalog) *server.MCPServer {
	s := server.NewMCPServer(
		"Maintainability Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:   baseCfg,
		store:     store,
		generator: generator,
		catalog:   catalog,
	}

	// --- 1. Tool: extract_file_metrics ---
	s.AddTool(mcp.NewTool("extract_file_metrics",
		mcp.WithDescription("Score a source file on every maintainability metric and persist the observations."),
		mcp.WithString("file_path", mcp.Description("Relative path of the file, used in the review prompt."), mcp.Required()),
		mcp.WithString("content", mcp.Description("Full text content of the file."), mcp.Required()),
		mcp.WithString("project", mcp.Description("Project to record the file under (defaults to the configured project).")),
	), h.handleExtractFileMetrics)

	// --- 2. Tool: get_project_trend ---
	s.AddTool(mcp.NewTool("get_project_trend",
		mcp.WithDescription("Return the per-metric maintainability series for a project, aggregated by day."),
		mcp.WithString("project", mcp.Description("Project name."), mcp.Required()),
		mcp.WithNumber("key_file_limit", mcp.Description("Number of key files per data point (5 or 8).")),
	), h.handleGetProjectTrend)

	// --- 3. Tool: list_metrics ---
	s.AddTool(mcp.NewTool("list_metrics",
		mcp.WithDescription("List the maintainability metrics with their rubric descriptions."),
	), h.handleListMetrics)

	return s
}

// StartMCPServer starts the maintainability MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.RecordStore, generator contract.TextGenerator, catalog schema.Catalog) error {
	s := NewMCPServer(baseCfg, store, generator, catalog)
	return server.ServeStdio(s)
}
