package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	shindan "github.com/wrenchworks-ai/shindan"
	"github.com/wrenchworks-ai/shindan/internal/storage"
	"github.com/wrenchworks-ai/shindan/internal/telemetry"
)

var diagMeter = telemetry.Meter("shindan/diagnostics")

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	engine      *shindan.Engine
	db          *storage.DB // nil when persistence is disabled
	logger      *slog.Logger
	startedAt   time.Time
	version     string
	openapiSpec []byte

	// Live sessions. Belief state cannot be rebuilt from a stored record, so
	// mutating operations require the session to still be resident.
	mu   sync.Mutex
	live map[string]*shindan.Session
}

// HandlersDeps holds all dependencies for constructing Handlers.
// Optional (nil-safe): DB, OpenAPISpec.
type HandlersDeps struct {
	Engine      *shindan.Engine
	DB          *storage.DB
	Logger      *slog.Logger
	Version     string
	OpenAPISpec []byte
}

// NewHandlers creates a new Handlers with all dependencies.
func NewHandlers(d HandlersDeps) *Handlers {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		engine:      d.Engine,
		db:          d.DB,
		logger:      logger,
		startedAt:   time.Now(),
		version:     d.Version,
		openapiSpec: d.OpenAPISpec,
		live:        make(map[string]*shindan.Session),
	}
}

// HandleDiagnose handles POST /v1/diagnose.
func (h *Handlers) HandleDiagnose(w http.ResponseWriter, r *http.Request) {
	var input shindan.Input
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, http.StatusBadRequest, errCodeBadRequest, "invalid request body: "+err.Error())
		return
	}

	result := h.engine.Diagnose(input)
	if counter, err := diagMeter.Int64Counter("shindan.diagnoses"); err == nil {
		counter.Add(r.Context(), 1, otelmetric.WithAttributes(
			attribute.String("phase", string(result.Phase)),
		))
	}
	writeJSON(w, r, http.StatusOK, result)
}

// HandleListFailures handles GET /v1/knowledge/failures.
func (h *Handlers) HandleListFailures(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.engine.Failures())
}

// HandleOpenAPISpec serves the embedded OpenAPI specification.
func (h *Handlers) HandleOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	if len(h.openapiSpec) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.openapiSpec)
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	httpStatus := http.StatusOK
	dbStatus := "disabled"

	if h.db != nil {
		dbStatus = "connected"
		if err := h.db.Ping(r.Context()); err != nil {
			dbStatus = "disconnected"
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, r, httpStatus, map[string]any{
		"status":         status,
		"version":        h.version,
		"storage":        dbStatus,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	})
}
