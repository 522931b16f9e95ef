package shindan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds the settings needed to construct a Client.
type Config struct {
	// BaseURL is the root URL of the Shindan server (e.g. "http://localhost:8080").
	BaseURL string

	// HTTPClient is an optional custom HTTP client. If nil, a default client
	// with a 30-second timeout is used.
	HTTPClient *http.Client

	// Timeout applies to individual API requests. Defaults to 30 seconds.
	// Ignored when HTTPClient is set.
	Timeout time.Duration
}

// Client is an HTTP client for the Shindan vehicle-diagnostics API.
// All methods are safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Client from the given configuration.
// Returns an error if BaseURL is empty.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("shindan: BaseURL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  httpClient,
	}, nil
}

// Health reports the server's health, version, and storage status.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.get(ctx, "/health", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Diagnose runs a one-shot diagnosis over the given sensors, trouble codes,
// and symptom descriptions. No session state is kept on the server.
func (c *Client) Diagnose(ctx context.Context, req DiagnoseRequest) (*DiagnoseResult, error) {
	var result DiagnoseResult
	if err := c.post(ctx, "/v1/diagnose", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// StartSession opens an interactive diagnostic session. Initial symptoms and
// sensor readings are folded into the starting belief state.
func (c *Client) StartSession(ctx context.Context, req StartSessionRequest) (*SessionResponse, error) {
	var resp SessionResponse
	if err := c.post(ctx, "/v1/sessions", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Observe records one piece of evidence against a session. Exactly one of
// the request's EvidenceType, DTC, or Symptom fields must be set.
func (c *Client) Observe(ctx context.Context, sessionID string, req ObserveRequest) (*SessionResponse, error) {
	var resp SessionResponse
	if err := c.post(ctx, "/v1/sessions/"+url.PathEscape(sessionID)+"/observations", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ObserveEvidence records a canonical evidence token as observed or absent.
func (c *Client) ObserveEvidence(ctx context.Context, sessionID, evidenceType string, observed bool, notes string) (*SessionResponse, error) {
	return c.Observe(ctx, sessionID, ObserveRequest{
		EvidenceType: evidenceType,
		Observed:     &observed,
		Notes:        notes,
	})
}

// ObserveDTC records a diagnostic trouble code. The server rejects codes not
// in its table with a 400 error.
func (c *Client) ObserveDTC(ctx context.Context, sessionID, code string) (*SessionResponse, error) {
	return c.Observe(ctx, sessionID, ObserveRequest{DTC: code})
}

// ObserveSymptom records a free-text symptom description. The server rejects
// text that matches no known symptom pattern with a 400 error.
func (c *Client) ObserveSymptom(ctx context.Context, sessionID, text string) (*SessionResponse, error) {
	return c.Observe(ctx, sessionID, ObserveRequest{Symptom: text})
}

// Recommendation returns the highest-information-gain test for the session,
// or nil when the session has concluded or no test discriminates further.
func (c *Client) Recommendation(ctx context.Context, sessionID string) (*NextTest, error) {
	var resp struct {
		Recommendation *NextTest `json:"recommendation"`
	}
	if err := c.get(ctx, "/v1/sessions/"+url.PathEscape(sessionID)+"/recommendation", &resp); err != nil {
		return nil, err
	}
	return resp.Recommendation, nil
}

// Conclude finalizes the session on its current leading hypothesis and
// returns the verdict with a written report.
func (c *Client) Conclude(ctx context.Context, sessionID string) (*Conclusion, error) {
	var conc Conclusion
	if err := c.post(ctx, "/v1/sessions/"+url.PathEscape(sessionID)+"/conclude", struct{}{}, &conc); err != nil {
		return nil, err
	}
	return &conc, nil
}

// Explain returns a plain-text walkthrough of the session's reasoning.
func (c *Client) Explain(ctx context.Context, sessionID string) (string, error) {
	return c.getText(ctx, "/v1/sessions/"+url.PathEscape(sessionID)+"/explain")
}

// GetSession returns the session's current snapshot. Sessions no longer
// resident in memory are served from storage.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*SessionSnapshot, error) {
	var snap SessionSnapshot
	if err := c.get(ctx, "/v1/sessions/"+url.PathEscape(sessionID), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// ListSessions returns summaries of stored sessions, most recent first.
func (c *Client) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	var out []SessionSummary
	if err := c.get(ctx, "/v1/sessions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteSession removes a session from memory and storage.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.doDelete(ctx, "/v1/sessions/"+url.PathEscape(sessionID))
}

// ListFailures returns the server's failure catalog.
func (c *Client) ListFailures(ctx context.Context) ([]FailureInfo, error) {
	var out []FailureInfo
	if err := c.get(ctx, "/v1/knowledge/failures", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// HTTP transport
// ---------------------------------------------------------------------------

// apiEnvelope is the server's standard response wrapper.
type apiEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// apiErrorEnvelope is the server's standard error response wrapper.
type apiErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) post(ctx context.Context, path string, body any, dest any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("shindan: marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("shindan: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doRequest(req, dest)
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("shindan: create request: %w", err)
	}

	return c.doRequest(req, dest)
}

func (c *Client) doDelete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("shindan: create request: %w", err)
	}

	return c.doRequest(req, nil)
}

// getText fetches a plain-text endpoint. Error responses still arrive as
// JSON envelopes and are parsed as such.
func (c *Client) getText(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("shindan: create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("shindan: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("shindan: read response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", parseErrorResponse(resp.StatusCode, body)
	}
	return string(body), nil
}

func (c *Client) doRequest(req *http.Request, dest any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("shindan: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return handleResponse(resp, dest)
}

func handleResponse(resp *http.Response, dest any) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("shindan: read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseErrorResponse(resp.StatusCode, bodyBytes)
	}

	// 204 No Content has nothing to decode.
	if resp.StatusCode == http.StatusNoContent || dest == nil {
		return nil
	}

	// Unwrap the server's { "data": ... } envelope.
	var envelope apiEnvelope
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return fmt.Errorf("shindan: decode response envelope: %w", err)
	}

	if envelope.Data == nil {
		// Fallback: some endpoints may not wrap in "data".
		return json.Unmarshal(bodyBytes, dest)
	}

	return json.Unmarshal(envelope.Data, dest)
}

func parseErrorResponse(statusCode int, body []byte) *Error {
	apiErr := &Error{StatusCode: statusCode}

	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	} else {
		apiErr.Code = http.StatusText(statusCode)
		apiErr.Message = string(body)
	}

	return apiErr
}
