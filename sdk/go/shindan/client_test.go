package shindan

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// mockServer creates an httptest server that mimics the Shindan API.
func mockServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range handlers {
		mux.HandleFunc(pattern, handler)
	}
	return httptest.NewServer(mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c, err := NewClient(Config{
		BaseURL: serverURL,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error for empty BaseURL")
	}
}

func TestDiagnoseUnwrapsEnvelope(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"POST /v1/diagnose": func(w http.ResponseWriter, r *http.Request) {
			var req DiagnoseRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
			}
			if len(req.DTCs) != 1 || req.DTCs[0] != "P0171" {
				t.Errorf("unexpected DTCs: %v", req.DTCs)
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"data": DiagnoseResult{
					Phase:      PhaseConfident,
					Diagnosis:  "vacuum_leak",
					Confidence: 0.87,
					Evidence:   []string{"dtc_lean_bank1", "high_fuel_trim"},
				},
			})
		},
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	result, err := client.Diagnose(context.Background(), DiagnoseRequest{
		DTCs: []string{"P0171"},
	})
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if result.Phase != PhaseConfident {
		t.Errorf("expected phase confident, got %q", result.Phase)
	}
	if result.Diagnosis != "vacuum_leak" {
		t.Errorf("expected vacuum_leak, got %q", result.Diagnosis)
	}
	if len(result.Evidence) != 2 {
		t.Errorf("expected 2 evidence entries, got %d", len(result.Evidence))
	}
}

func TestSessionFlow(t *testing.T) {
	const sessionID = "11111111-2222-3333-4444-555555555555"

	srv := mockServer(t, map[string]http.HandlerFunc{
		"POST /v1/sessions": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, map[string]any{
				"data": SessionResponse{
					Session: SessionSnapshot{ID: sessionID, Concluded: false},
					Recommendation: &NextTest{
						Test:             "fan_operation_check",
						ExpectedInfoGain: 1.2,
					},
				},
			})
		},
		"POST /v1/sessions/" + sessionID + "/observations": func(w http.ResponseWriter, r *http.Request) {
			var req ObserveRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
			}
			if req.DTC != "P0480" {
				t.Errorf("expected DTC P0480, got %q", req.DTC)
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"data": SessionResponse{
					Session: SessionSnapshot{
						ID:        sessionID,
						Concluded: true,
						Conclusion: &Conclusion{
							Diagnosis:    "cooling_fan_not_operating",
							Confidence:   0.91,
							IsConclusive: true,
						},
					},
				},
			})
		},
		"DELETE /v1/sessions/" + sessionID: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	ctx := context.Background()

	started, err := client.StartSession(ctx, StartSessionRequest{
		Vehicle:  VehicleInfo{Make: "Toyota", Model: "Camry", Year: 2019},
		Symptoms: []string{"engine overheating"},
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if started.Session.ID != sessionID {
		t.Errorf("expected session %s, got %s", sessionID, started.Session.ID)
	}
	if started.Recommendation == nil || started.Recommendation.Test != "fan_operation_check" {
		t.Errorf("unexpected recommendation: %+v", started.Recommendation)
	}

	observed, err := client.ObserveDTC(ctx, sessionID, "P0480")
	if err != nil {
		t.Fatalf("ObserveDTC failed: %v", err)
	}
	if !observed.Session.Concluded {
		t.Error("expected session to be concluded")
	}
	if observed.Session.Conclusion.Diagnosis != "cooling_fan_not_operating" {
		t.Errorf("unexpected diagnosis %q", observed.Session.Conclusion.Diagnosis)
	}

	if err := client.DeleteSession(ctx, sessionID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
}

func TestObserveEvidenceSendsObservedFlag(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"POST /v1/sessions/abc/observations": func(w http.ResponseWriter, r *http.Request) {
			var req ObserveRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
			}
			if req.EvidenceType != "fan_not_running_when_hot" {
				t.Errorf("unexpected evidence type %q", req.EvidenceType)
			}
			if req.Observed == nil || *req.Observed {
				t.Error("expected observed=false to be sent explicitly")
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"data": SessionResponse{Session: SessionSnapshot{ID: "abc"}},
			})
		},
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.ObserveEvidence(context.Background(), "abc", "fan_not_running_when_hot", false, "fan spins fine")
	if err != nil {
		t.Fatalf("ObserveEvidence failed: %v", err)
	}
}

func TestExplainReturnsPlainText(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"GET /v1/sessions/abc/explain": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("Diagnostic Reasoning\n\nCertainty: 82%\n"))
		},
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	text, err := client.Explain(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Explain failed: %v", err)
	}
	if !strings.Contains(text, "Certainty") {
		t.Errorf("unexpected explain text: %q", text)
	}
}

func TestErrorParsing(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"GET /v1/sessions/missing": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error": map[string]any{"code": "not_found", "message": "session not found"},
			})
		},
		"POST /v1/sessions/stale/observations": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"error": map[string]any{"code": "conflict", "message": "session is no longer active"},
			})
		},
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	ctx := context.Background()

	_, err := client.GetSession(ctx, "missing")
	if !IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Code != "not_found" || apiErr.Message != "session not found" {
		t.Errorf("unexpected error fields: %+v", apiErr)
	}

	_, err = client.ObserveDTC(ctx, "stale", "P0480")
	if !IsConflict(err) {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestListFailures(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"GET /v1/knowledge/failures": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"data": []FailureInfo{
					{ID: "vacuum_leak", System: "fuel"},
					{ID: "normal", System: "none"},
				},
			})
		},
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	failures, err := client.ListFailures(context.Background())
	if err != nil {
		t.Fatalf("ListFailures failed: %v", err)
	}
	if len(failures) != 2 || failures[0].ID != "vacuum_leak" {
		t.Errorf("unexpected failures: %+v", failures)
	}
}

func TestHealth(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"GET /health": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"data": Health{Status: "healthy", Version: "1.0.0", Storage: "connected"},
			})
		},
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	h, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if h.Status != "healthy" || h.Storage != "connected" {
		t.Errorf("unexpected health: %+v", h)
	}
}

func TestRequestTimeout(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"GET /health": func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			writeJSON(w, http.StatusOK, map[string]any{"data": Health{Status: "healthy"}})
		},
	})
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if _, err := client.Health(context.Background()); err == nil {
		t.Fatal("expected timeout error")
	}
}
