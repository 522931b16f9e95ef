package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	mcpclient "github.com/mark3labs/mcp-go/client"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shindan "github.com/wrenchworks-ai/shindan"
	"github.com/wrenchworks-ai/shindan/api"
	"github.com/wrenchworks-ai/shindan/internal/mcp"
	"github.com/wrenchworks-ai/shindan/internal/ratelimit"
	"github.com/wrenchworks-ai/shindan/internal/server"
	"github.com/wrenchworks-ai/shindan/internal/storage"
	"github.com/wrenchworks-ai/shindan/internal/testutil"
)

var (
	testSrv    *httptest.Server
	testEngine *shindan.Engine
	testDB     *storage.DB
	testLogger *slog.Logger
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	testLogger = testutil.TestLogger()
	testDB = testutil.MustOpenDB(ctx)

	var err error
	testEngine, err = shindan.New(shindan.WithLogger(testLogger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build engine: %v\n", err)
		os.Exit(1)
	}

	mcpSrv := mcp.New(testEngine, testLogger, "test")
	srv := server.New(server.Config{
		Engine:              testEngine,
		Logger:              testLogger,
		DB:                  testDB,
		Limiter:             ratelimit.NoopLimiter{},
		MCPServer:           mcpSrv.MCPServer(),
		OpenAPISpec:         api.OpenAPISpec,
		Version:             "test",
		MaxRequestBodyBytes: 1 << 20,
	})

	testSrv = httptest.NewServer(srv.Handler())

	code := m.Run()

	testSrv.Close()
	_ = testDB.Close()
	os.Exit(code)
}

func doJSON(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, testSrv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(data, &envelope), "body: %s", string(data))
	require.NoError(t, json.Unmarshal(envelope.Data, target), "data: %s", string(envelope.Data))
}

func TestHealthEndpoint(t *testing.T) {
	resp, err := http.Get(testSrv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status  string `json:"status"`
		Version string `json:"version"`
		Storage string `json:"storage"`
	}
	decodeData(t, resp, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)
	assert.Equal(t, "connected", health.Storage)
}

func TestOpenAPISpecServed(t *testing.T) {
	resp, err := http.Get(testSrv.URL + "/openapi.yaml")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/yaml", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Shindan Vehicle Diagnostics API")
	assert.Contains(t, string(body), "/v1/diagnose")
}

func TestDiagnoseEndpoint(t *testing.T) {
	resp := doJSON(t, "POST", "/v1/diagnose", shindan.Input{
		Sensors: []shindan.SensorReading{
			{Name: "stft", Value: 15},
			{Name: "ltft", Value: 12},
		},
		DTCs:     []string{"P0171"},
		Symptoms: []string{"rough idle"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result shindan.Result
	decodeData(t, resp, &result)
	assert.Equal(t, shindan.PhaseConfident, result.Phase)
	assert.Equal(t, "vacuum_leak", result.Diagnosis)
	assert.Contains(t, result.Evidence, "high_total_fuel_trim")
	assert.NotEmpty(t, result.RecommendedActions)
}

func TestDiagnoseRejectsUnknownFields(t *testing.T) {
	resp := doJSON(t, "POST", "/v1/diagnose", map[string]any{"bogus_field": 1})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRequestIDHeader(t *testing.T) {
	resp, err := http.Get(testSrv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestSessionLifecycle(t *testing.T) {
	// Start with an overheating reading; coolant_temp_high applies immediately.
	resp := doJSON(t, "POST", "/v1/sessions", map[string]any{
		"vehicle": shindan.VehicleInfo{Make: "Honda", Model: "Civic", Year: 2018},
		"sensors": []shindan.SensorReading{{Name: "coolant_temp", Value: 118}},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var started struct {
		Session        shindan.SessionSnapshot `json:"session"`
		Recommendation *shindan.NextTest       `json:"recommendation"`
	}
	decodeData(t, resp, &started)
	id := started.Session.ID
	require.NotEmpty(t, id)
	assert.False(t, started.Session.Concluded)
	assert.NotEmpty(t, started.Session.TopHypotheses)

	// A fan check does not settle it alone.
	resp = doJSON(t, "POST", "/v1/sessions/"+id+"/observations", map[string]any{
		"evidence_type": "fan_not_running_when_hot",
		"observed":      true,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var afterFan struct {
		Session        shindan.SessionSnapshot `json:"session"`
		Recommendation *shindan.NextTest       `json:"recommendation"`
	}
	decodeData(t, resp, &afterFan)
	assert.False(t, afterFan.Session.Concluded)

	// The fan circuit code pushes it over the confidence threshold.
	resp = doJSON(t, "POST", "/v1/sessions/"+id+"/observations", map[string]any{
		"dtc": "P0480",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var afterDTC struct {
		Session        shindan.SessionSnapshot `json:"session"`
		Recommendation *shindan.NextTest       `json:"recommendation"`
	}
	decodeData(t, resp, &afterDTC)
	assert.True(t, afterDTC.Session.Concluded)
	assert.Nil(t, afterDTC.Recommendation)
	require.NotNil(t, afterDTC.Session.Conclusion)
	assert.Equal(t, "cooling_fan_not_operating", afterDTC.Session.Conclusion.Diagnosis)

	// Conclude is idempotent once the session settled on its own.
	resp = doJSON(t, "POST", "/v1/sessions/"+id+"/conclude", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var conclusion shindan.Conclusion
	decodeData(t, resp, &conclusion)
	assert.Equal(t, "cooling_fan_not_operating", conclusion.Diagnosis)
	assert.False(t, conclusion.Forced)
	assert.NotEmpty(t, conclusion.RecommendedActions)
	assert.Contains(t, conclusion.Report, "Diagnostic Conclusion")

	// Explain renders the reasoning trail as plain text.
	resp, err := http.Get(testSrv.URL + "/v1/sessions/" + id + "/explain")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	text, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Contains(t, string(text), "Certainty")
	assert.Contains(t, string(text), "fan_not_running_when_hot")

	// The session is retrievable and listed.
	resp, err = http.Get(testSrv.URL + "/v1/sessions/" + id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var snap shindan.SessionSnapshot
	decodeData(t, resp, &snap)
	assert.Equal(t, id, snap.ID)
	assert.True(t, snap.Concluded)

	resp, err = http.Get(testSrv.URL + "/v1/sessions")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list []struct {
		ID        string `json:"id"`
		Diagnosis string `json:"diagnosis"`
	}
	decodeData(t, resp, &list)
	found := false
	for _, item := range list {
		if item.ID == id {
			found = true
			assert.Equal(t, "cooling_fan_not_operating", item.Diagnosis)
		}
	}
	assert.True(t, found, "session should appear in listing")

	// Delete removes it everywhere.
	req, _ := http.NewRequest("DELETE", testSrv.URL+"/v1/sessions/"+id, nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(testSrv.URL + "/v1/sessions/" + id)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestObserveValidation(t *testing.T) {
	resp := doJSON(t, "POST", "/v1/sessions", map[string]any{
		"symptoms": []string{"engine overheating"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var started struct {
		Session shindan.SessionSnapshot `json:"session"`
	}
	decodeData(t, resp, &started)
	id := started.Session.ID

	t.Run("two inputs rejected", func(t *testing.T) {
		resp := doJSON(t, "POST", "/v1/sessions/"+id+"/observations", map[string]any{
			"dtc":     "P0171",
			"symptom": "rough idle",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("no inputs rejected", func(t *testing.T) {
		resp := doJSON(t, "POST", "/v1/sessions/"+id+"/observations", map[string]any{
			"notes": "just looking",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown dtc rejected", func(t *testing.T) {
		resp := doJSON(t, "POST", "/v1/sessions/"+id+"/observations", map[string]any{
			"dtc": "Z9999",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unmatched symptom rejected", func(t *testing.T) {
		resp := doJSON(t, "POST", "/v1/sessions/"+id+"/observations", map[string]any{
			"symptom": "chartreuse moon dust on the manifold",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSessionNotFound(t *testing.T) {
	resp := doJSON(t, "POST", "/v1/sessions/00000000-0000-0000-0000-000000000000/observations", map[string]any{
		"dtc": "P0171",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStoredSessionNotResident(t *testing.T) {
	// Start a session on the shared server so it lands in storage.
	resp := doJSON(t, "POST", "/v1/sessions", map[string]any{
		"symptoms": []string{"engine overheating"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var started struct {
		Session shindan.SessionSnapshot `json:"session"`
	}
	decodeData(t, resp, &started)
	id := started.Session.ID

	// A second instance sharing the database sees the stored record but does
	// not hold the live belief state.
	other := server.New(server.Config{
		Engine:  testEngine,
		Logger:  testLogger,
		DB:      testDB,
		Version: "test",
	})
	otherSrv := httptest.NewServer(other.Handler())
	defer otherSrv.Close()

	// Reads fall back to the snapshot.
	getResp, err := http.Get(otherSrv.URL + "/v1/sessions/" + id)
	require.NoError(t, err)
	_ = getResp.Body.Close()
	assert.Equal(t, http.StatusOK, getResp.StatusCode)

	// Mutations conflict.
	body, _ := json.Marshal(map[string]any{"dtc": "P0480"})
	postResp, err := http.Post(otherSrv.URL+"/v1/sessions/"+id+"/observations", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	_ = postResp.Body.Close()
	assert.Equal(t, http.StatusConflict, postResp.StatusCode)
}

func TestKnowledgeFailuresEndpoint(t *testing.T) {
	resp, err := http.Get(testSrv.URL + "/v1/knowledge/failures")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var failures []shindan.FailureInfo
	decodeData(t, resp, &failures)
	require.NotEmpty(t, failures)

	ids := make(map[string]bool, len(failures))
	for _, f := range failures {
		ids[f.ID] = true
		assert.NotEmpty(t, f.System, "failure %s should name its system", f.ID)
	}
	assert.True(t, ids["cooling_fan_not_operating"])
	assert.True(t, ids["vacuum_leak"])
	assert.True(t, ids["normal"])
}

func TestRateLimitEnforced(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(0.01, 1)
	defer limiter.Close()

	limited := server.New(server.Config{
		Engine:  testEngine,
		Logger:  testLogger,
		Limiter: limiter,
		Version: "test",
	})
	limitedSrv := httptest.NewServer(limited.Handler())
	defer limitedSrv.Close()

	first, err := http.Get(limitedSrv.URL + "/v1/knowledge/failures")
	require.NoError(t, err)
	_ = first.Body.Close()
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second, err := http.Get(limitedSrv.URL + "/v1/knowledge/failures")
	require.NoError(t, err)
	_ = second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Equal(t, "1", second.Header.Get("Retry-After"))

	// Health stays reachable even when the API is throttled.
	health, err := http.Get(limitedSrv.URL + "/health")
	require.NoError(t, err)
	_ = health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

// ── MCP transport ──────────────────────────────────────────────────────────

func newMCPClient(t *testing.T) *mcpclient.Client {
	t.Helper()
	c, err := mcpclient.NewStreamableHttpClient(testSrv.URL + "/mcp")
	require.NoError(t, err)

	_, err = c.Initialize(context.Background(), mcplib.InitializeRequest{
		Params: mcplib.InitializeParams{
			ClientInfo: mcplib.Implementation{Name: "test-client", Version: "1.0"},
		},
	})
	require.NoError(t, err)
	return c
}

func callTool(t *testing.T, c *mcpclient.Client, name string, args map[string]any) string {
	t.Helper()
	result, err := c.CallTool(context.Background(), mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, "%s returned error: %v", name, result.Content)
	for _, content := range result.Content {
		if tc, ok := content.(mcplib.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatalf("%s returned no text content", name)
	return ""
}

func TestMCPListTools(t *testing.T) {
	c := newMCPClient(t)
	defer func() { _ = c.Close() }()

	toolsResult, err := c.ListTools(context.Background(), mcplib.ListToolsRequest{})
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, tool := range toolsResult.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"shindan_diagnose",
		"shindan_start_session",
		"shindan_observe",
		"shindan_rule_out",
		"shindan_recommend_test",
		"shindan_conclude",
		"shindan_explain",
	} {
		assert.True(t, names[want], "expected %s tool", want)
	}
}

func TestMCPDiagnoseTool(t *testing.T) {
	c := newMCPClient(t)
	defer func() { _ = c.Close() }()

	text := callTool(t, c, "shindan_diagnose", map[string]any{
		"sensors":  `{"stft": 15, "ltft": 12}`,
		"dtcs":     "P0171",
		"symptoms": "rough idle",
	})

	var result shindan.Result
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.Equal(t, "vacuum_leak", result.Diagnosis)
	assert.Equal(t, shindan.PhaseConfident, result.Phase)
}

func TestMCPSessionFlow(t *testing.T) {
	c := newMCPClient(t)
	defer func() { _ = c.Close() }()

	startText := callTool(t, c, "shindan_start_session", map[string]any{
		"vehicle_make":  "Honda",
		"vehicle_model": "Civic",
		"vehicle_year":  2018,
		"sensors":       `{"coolant_temp": 118}`,
	})
	var started struct {
		Session shindan.SessionSnapshot `json:"session"`
	}
	require.NoError(t, json.Unmarshal([]byte(startText), &started))
	id := started.Session.ID
	require.NotEmpty(t, id)

	callTool(t, c, "shindan_observe", map[string]any{
		"session_id":    id,
		"evidence_type": "fan_not_running_when_hot",
		"observed":      true,
	})
	afterText := callTool(t, c, "shindan_observe", map[string]any{
		"session_id": id,
		"dtc":        "P0480",
	})
	var after struct {
		Session shindan.SessionSnapshot `json:"session"`
	}
	require.NoError(t, json.Unmarshal([]byte(afterText), &after))
	assert.True(t, after.Session.Concluded)

	concludeText := callTool(t, c, "shindan_conclude", map[string]any{"session_id": id})
	var conclusion shindan.Conclusion
	require.NoError(t, json.Unmarshal([]byte(concludeText), &conclusion))
	assert.Equal(t, "cooling_fan_not_operating", conclusion.Diagnosis)

	explainText := callTool(t, c, "shindan_explain", map[string]any{"session_id": id})
	assert.Contains(t, explainText, "Certainty")
}

func TestMCPObserveUnknownSession(t *testing.T) {
	c := newMCPClient(t)
	defer func() { _ = c.Close() }()

	result, err := c.CallTool(context.Background(), mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Name:      "shindan_observe",
			Arguments: map[string]any{"session_id": "nope", "dtc": "P0171"},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestMCPFailuresResource(t *testing.T) {
	c := newMCPClient(t)
	defer func() { _ = c.Close() }()

	result, err := c.ReadResource(context.Background(), mcplib.ReadResourceRequest{
		Params: mcplib.ReadResourceParams{URI: "shindan://knowledge/failures"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Contents)

	tc, ok := result.Contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Contains(t, tc.Text, "cooling_fan_not_operating")
}
