// Package mcp exposes the federated search and the CQ browser as MCP
// tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/evidence-navigator-server/internal/service"
)

// Server is the MCP stdio server over the search orchestrator
type Server struct {
	logger       *logrus.Logger
	mcpServer    *mcp.Server
	orchestrator *service.Orchestrator
}

// NewServer creates the MCP server and registers its tools
func NewServer(logger *logrus.Logger, orchestrator *service.Orchestrator) *Server {
	serverInfo := &mcp.Implementation{
		Name:    "evidence-navigator",
		Version: "v1.0.0",
	}
	mcpServer := mcp.NewServer(serverInfo, nil)

	s := &Server{
		logger:       logger,
		mcpServer:    mcpServer,
		orchestrator: orchestrator,
	}

	mcpServer.AddTool(&mcp.Tool{
		Name:        "search_literature",
		Description: "Search six bibliographic databases for clinical evidence, grouped by evidence level, with national guideline and clinical question matches",
	}, s.handleSearch)
	mcpServer.AddTool(&mcp.Tool{
		Name:        "list_clinical_questions",
		Description: "Browse the embedded clinical questions grouped by guideline, optionally filtered by category",
	}, s.handleCQList)

	return s
}

// Run serves MCP over stdio until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Starting MCP server on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

type searchParams struct {
	Query        string `json:"query"`
	Multilingual bool   `json:"multilingual,omitempty"`
	PatientVoice bool   `json:"patient_voice,omitempty"`
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params searchParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	s.logger.WithField("query", params.Query).Info("MCP search invoked")

	response, err := s.orchestrator.Search(ctx, service.SearchRequest{
		Q:            params.Query,
		Multilingual: params.Multilingual,
		PatientVoice: params.PatientVoice,
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(response)
}

type cqListParams struct {
	Category string `json:"category,omitempty"`
}

func (s *Server) handleCQList(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params cqListParams
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}
	return jsonResult(s.orchestrator.CQList(params.Category))
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(payload)},
		},
	}, nil
}
