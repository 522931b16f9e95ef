package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	shindan "github.com/wrenchworks-ai/shindan"
	"github.com/wrenchworks-ai/shindan/internal/ratelimit"
	"github.com/wrenchworks-ai/shindan/internal/storage"
)

// Server is the Shindan HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	handlers   *Handlers
	logger     *slog.Logger
}

// Handler returns the root HTTP handler for use in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Config holds all dependencies and configuration for creating a Server.
// Optional fields (nil-safe): DB, Limiter, MCPServer, OpenAPISpec.
type Config struct {
	// Required dependencies.
	Engine *shindan.Engine
	Logger *slog.Logger

	// Optional dependencies (nil = disabled).
	DB          *storage.DB
	Limiter     ratelimit.Limiter
	MCPServer   *mcpserver.MCPServer
	OpenAPISpec []byte // Embedded OpenAPI YAML.

	// HTTP server settings.
	Port                int
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	Version             string
	MaxRequestBodyBytes int64
}

// New creates a new HTTP server with all routes configured.
func New(cfg Config) *Server {
	h := NewHandlers(HandlersDeps{
		Engine:      cfg.Engine,
		DB:          cfg.DB,
		Logger:      cfg.Logger,
		Version:     cfg.Version,
		OpenAPISpec: cfg.OpenAPISpec,
	})

	rl := ratelimit.Middleware(cfg.Limiter, ratelimit.IPKeyFunc)

	mux := http.NewServeMux()

	// One-shot diagnosis.
	mux.Handle("POST /v1/diagnose", rl(http.HandlerFunc(h.HandleDiagnose)))

	// Multi-turn sessions.
	mux.Handle("POST /v1/sessions", rl(http.HandlerFunc(h.HandleStartSession)))
	mux.Handle("GET /v1/sessions", rl(http.HandlerFunc(h.HandleListSessions)))
	mux.Handle("GET /v1/sessions/{session_id}", rl(http.HandlerFunc(h.HandleGetSession)))
	mux.Handle("DELETE /v1/sessions/{session_id}", rl(http.HandlerFunc(h.HandleDeleteSession)))
	mux.Handle("POST /v1/sessions/{session_id}/observations", rl(http.HandlerFunc(h.HandleObserve)))
	mux.Handle("GET /v1/sessions/{session_id}/recommendation", rl(http.HandlerFunc(h.HandleRecommendation)))
	mux.Handle("POST /v1/sessions/{session_id}/conclude", rl(http.HandlerFunc(h.HandleConclude)))
	mux.Handle("GET /v1/sessions/{session_id}/explain", rl(http.HandlerFunc(h.HandleExplain)))

	// Knowledge base catalog (read-only).
	mux.Handle("GET /v1/knowledge/failures", rl(http.HandlerFunc(h.HandleListFailures)))

	// MCP StreamableHTTP transport.
	if cfg.MCPServer != nil {
		mcpHTTP := mcpserver.NewStreamableHTTPServer(cfg.MCPServer)
		mux.Handle("/mcp", mcpHTTP)
	}

	// Health and API spec (no rate limit).
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET /openapi.yaml", h.HandleOpenAPISpec)

	// Middleware chain (outermost executes first):
	// request ID → tracing → logging → body limit → recovery → handler.
	var handler http.Handler = mux
	handler = recoveryMiddleware(cfg.Logger, handler)
	handler = bodyLimitMiddleware(cfg.MaxRequestBodyBytes, handler)
	handler = loggingMiddleware(cfg.Logger, handler)
	handler = tracingMiddleware(handler)
	handler = requestIDMiddleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		handler:  handler,
		handlers: h,
		logger:   cfg.Logger,
	}
}

// Handlers returns the underlying Handlers, for tests and background jobs.
func (s *Server) Handlers() *Handlers {
	return s.handlers
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
