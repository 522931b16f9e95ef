package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() {
	// shindan://knowledge/failures — the failure-mode catalog.
	s.mcpServer.AddResource(
		mcplib.NewResource(
			"shindan://knowledge/failures",
			"Failure Mode Catalog",
			mcplib.WithResourceDescription("All failure modes the engine can diagnose, with repair actions and discriminating tests"),
			mcplib.WithMIMEType("application/json"),
		),
		s.handleFailuresResource,
	)

	// shindan://sessions/{id} — a specific session's current state.
	s.mcpServer.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"shindan://sessions/{id}",
			"Diagnostic Session",
			mcplib.WithTemplateDescription("Current state of a diagnostic session started over this connection"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		s.handleSessionResource,
	)
}

func (s *Server) handleFailuresResource(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(s.engine.Failures(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcp: marshal failures: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      "shindan://knowledge/failures",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleSessionResource(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	uri := request.Params.URI
	id := strings.TrimPrefix(uri, "shindan://sessions/")
	if id == "" || id == uri {
		return nil, fmt.Errorf("mcp: invalid session URI: %s", uri)
	}

	sess, ok := s.session(id)
	if !ok {
		return nil, fmt.Errorf("mcp: session %s not found", id)
	}

	data, err := json.MarshalIndent(s.engine.Snapshot(sess), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcp: marshal session: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
