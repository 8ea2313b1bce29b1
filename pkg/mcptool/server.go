// Package mcptool exposes the suggestion pipeline as an MCP tool over stdio.
package mcptool

import (
	"context"
	"fmt"
	"sync"

	"github.com/bastiangx/suggestscope/internal/display"
	"github.com/bastiangx/suggestscope/internal/logger"
	"github.com/bastiangx/suggestscope/pkg/pipeline"
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolName is the single tool this server registers.
const ToolName = "expand_suggestions"

// Server wraps the MCP server with the pipeline it calls.
// The stdio transport dispatches tool calls from several goroutines; runs
// are serialized so one call never overlaps another's fetches or export.
type Server struct {
	mu        sync.Mutex
	runner    pipeline.Runner
	sections  []display.Section
	mcpServer *server.MCPServer
	logger    *log.Logger
}

// NewServer creates the MCP server and registers the tool.
func NewServer(runner pipeline.Runner, sections []display.Section, version string) *Server {
	s := &Server{
		runner:   runner,
		sections: sections,
		logger:   logger.New("mcp"),
	}

	s.mcpServer = server.NewMCPServer(
		"suggestscope",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.registerTools()
	return s
}

// ServeStdio blocks serving MCP over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	tool := mcp.NewTool(ToolName,
		mcp.WithDescription("Expand a keyword into Google autocomplete suggestions grouped by intent (questions, prepositions, comparisons, complaints, alphabetical) and export them to CSV"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Keyword or phrase to expand"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleExpand)
}

func (s *Server) handleExpand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter required"), nil
	}

	s.mu.Lock()
	out, err := s.runner.Run(ctx, query)
	s.mu.Unlock()
	if err != nil {
		s.logger.Warn("Tool run failed", "query", query, "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to expand %q: %v", query, err)), nil
	}

	return mcp.NewToolResultText(display.Markdown(query, out.Result, s.sections, out.Location)), nil
}
