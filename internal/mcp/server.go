// Package mcp exposes movelab to MCP clients: coding assistants can search
// workshops, pull step content and request code explanations.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/movelabhq/movelab/application/service"
)

// Server wraps an MCP server with the movelab tools registered.
type Server struct {
	mcp       *server.MCPServer
	workshops *service.WorkshopService
	explain   *service.ExplainService
}

// NewServer creates a Server with all tools registered.
func NewServer(workshops *service.WorkshopService, explain *service.ExplainService, version string) *Server {
	s := &Server{
		mcp:       server.NewMCPServer("movelab", version, server.WithToolCapabilities(false)),
		workshops: workshops,
		explain:   explain,
	}

	s.mcp.AddTool(
		mcp.NewTool("search_workshops",
			mcp.WithDescription("Search available workshops by title or description."),
			mcp.WithString("query", mcp.Description("Search text; empty lists all workshops.")),
		),
		s.handleSearchWorkshops,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_step",
			mcp.WithDescription("Fetch one workshop step: source code, annotations and highlights."),
			mcp.WithString("workshop_id", mcp.Required(), mcp.Description("Workshop identifier.")),
			mcp.WithNumber("step_index", mcp.Required(), mcp.Description("Zero-based step position.")),
		),
		s.handleGetStep,
	)

	s.mcp.AddTool(
		mcp.NewTool("explain_code",
			mcp.WithDescription("Explain a piece of Move contract code."),
			mcp.WithString("code", mcp.Required(), mcp.Description("The code to explain.")),
			mcp.WithString("question", mcp.Description("Optional question about the code.")),
		),
		s.handleExplainCode,
	)

	return s
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) handleSearchWorkshops(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")

	workshops, err := s.workshops.SearchWorkshops(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search workshops: %v", err)), nil
	}

	type workshopSummary struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
	}
	summaries := make([]workshopSummary, 0, len(workshops))
	for _, w := range workshops {
		summaries = append(summaries, workshopSummary{
			ID:          w.ID(),
			Title:       w.Title(),
			Description: w.Description(),
		})
	}

	payload, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) handleGetStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workshopID, err := request.RequireString("workshop_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	stepIndex := request.GetInt("step_index", -1)
	if stepIndex < 0 {
		return mcp.NewToolResultError("step_index is required and must be non-negative"), nil
	}

	w, err := s.workshops.GetWorkshop(ctx, workshopID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get workshop: %v", err)), nil
	}
	step, err := w.StepAt(stepIndex)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("workshop %s has no step %d", workshopID, stepIndex)), nil
	}

	type annotationSummary struct {
		Lines   []int  `json:"lines"`
		Content string `json:"content"`
	}
	type stepDetail struct {
		ID               string              `json:"id"`
		Title            string              `json:"title"`
		Description      string              `json:"description,omitempty"`
		SourceCode       string              `json:"source_code"`
		Annotations      []annotationSummary `json:"annotations,omitempty"`
		HighlightedLines []int               `json:"highlighted_lines,omitempty"`
	}

	detail := stepDetail{
		ID:               step.ID(),
		Title:            step.Title(),
		Description:      step.Description(),
		SourceCode:       step.SourceCode(),
		HighlightedLines: step.HighlightedLines(),
	}
	for _, ann := range step.Annotations() {
		detail.Annotations = append(detail.Annotations, annotationSummary{
			Lines:   ann.Lines().Lines(),
			Content: ann.Content(),
		})
	}

	payload, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode step: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) handleExplainCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	question := request.GetString("question", "")

	explanation, err := s.explain.Explain(ctx, code, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("explain code: %v", err)), nil
	}
	return mcp.NewToolResultText(explanation.Markdown), nil
}
