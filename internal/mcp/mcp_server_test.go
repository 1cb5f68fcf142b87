package mcp_test

import (
	"context"
	"strings"
	"testing"

	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/internal/iostore"
	mcp_internal "github.com/huangsam/maintscore/internal/mcp"
	"github.com/huangsam/maintscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedGenerator always concludes with the same score.
type fixedGenerator struct {
	reply string
}

func (g *fixedGenerator) Generate(_ context.Context, _ string) (string, error) {
	return g.reply, nil
}

func newTestServer() (*iostore.MemoryStore, *server.MCPServer) {
	baseCfg := &contract.Config{
		ProjectName:  "demo",
		UserEmail:    "dev@example.com",
		MaxAttempts:  contract.DefaultMaxAttempts,
		Workers:      1,
		KeyFileLimit: schema.DefaultKeyFileLimit,
	}
	store := iostore.NewMemoryStore()
	gen := &fixedGenerator{reply: "Solid structure overall. (8/10)"}
	return store, mcp_internal.NewMCPServer(baseCfg, store, gen, schema.DefaultCatalog())
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	_, s := newTestServer()
	ctx := context.Background()

	t.Run("extract_file_metrics missing file_path", func(t *testing.T) {
		tool := s.GetTool("extract_file_metrics")
		require.NotNil(t, tool, "Tool extract_file_metrics should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "extract_file_metrics",
				Arguments: map[string]any{
					"file_path": "", // Missing required
					"content":   "package main",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "file_path is required")
	})

	t.Run("extract_file_metrics missing content", func(t *testing.T) {
		tool := s.GetTool("extract_file_metrics")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "extract_file_metrics",
				Arguments: map[string]any{
					"file_path": "main.go",
					"content":   "",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "content is required")
	})

	t.Run("get_project_trend missing project", func(t *testing.T) {
		tool := s.GetTool("get_project_trend")
		require.NotNil(t, tool, "Tool get_project_trend should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_project_trend",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "project is required")
	})
}

func TestMCPServerHandlers_RoundTrip(t *testing.T) {
	store, s := newTestServer()
	ctx := context.Background()
	catalog := schema.DefaultCatalog()

	extract := s.GetTool("extract_file_metrics")
	require.NotNil(t, extract)

	res, err := extract.Handler(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "extract_file_metrics",
			Arguments: map[string]any{
				"file_path": "pkg/server.go",
				"content":   strings.Repeat("package server\n", 60),
			},
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError, "extraction should succeed")
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `"observations"`)

	files, err := store.GetFiles(ctx, "dev@example.com", "demo")
	require.NoError(t, err)
	require.Len(t, files, 1)

	trend := s.GetTool("get_project_trend")
	require.NotNil(t, trend)

	res, err = trend.Handler(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "get_project_trend",
			Arguments: map[string]any{
				"project": "demo",
			},
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError, "trend should succeed")

	text := res.Content[0].(mcp.TextContent).Text
	for _, m := range catalog.Metrics() {
		assert.Contains(t, text, string(m))
	}
	assert.Contains(t, text, `"score": 8`)
}

func TestMCPServerHandlers_ListMetrics(t *testing.T) {
	_, s := newTestServer()

	tool := s.GetTool("list_metrics")
	require.NotNil(t, tool, "Tool list_metrics should exist")

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: "list_metrics"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, "Data Security And Integrity")
	assert.Contains(t, text, "Single Responsibility Principle")
}
