// Package mcp implements the Model Context Protocol server for Shindan.
//
// The MCP server exposes the diagnostic engine to MCP-compatible AI agents:
// one-shot diagnosis, multi-turn diagnostic sessions, test recommendations,
// and the failure-mode catalog.
package mcp

import (
	"encoding/json"
	"log/slog"
	"sync"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	shindan "github.com/wrenchworks-ai/shindan"
)

// Server wraps the MCP server around the diagnostic engine.
//
// Sessions started over MCP live in this server's own registry; they are
// independent of sessions started over the HTTP API.
type Server struct {
	mcpServer *mcpserver.MCPServer
	engine    *shindan.Engine
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*shindan.Session
}

// New creates and configures a new MCP server with all tools and resources.
func New(engine *shindan.Engine, logger *slog.Logger, version string) *Server {
	s := &Server{
		engine:   engine,
		logger:   logger,
		sessions: make(map[string]*shindan.Session),
	}

	s.mcpServer = mcpserver.NewMCPServer(
		"shindan",
		version,
		mcpserver.WithResourceCapabilities(true, true),
		mcpserver.WithToolCapabilities(true),
	)

	s.registerResources()
	s.registerTools()

	return s
}

// MCPServer returns the underlying mcp-go server for transport setup.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}

// session looks up a session started over this transport.
func (s *Server) session(id string) (*shindan.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) register(sess *shindan.Session) {
	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{
			mcplib.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}

func jsonResult(v any) *mcplib.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{
			mcplib.TextContent{Type: "text", Text: string(data)},
		},
	}
}
