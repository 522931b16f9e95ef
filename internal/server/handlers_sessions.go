package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	shindan "github.com/wrenchworks-ai/shindan"
	"github.com/wrenchworks-ai/shindan/internal/storage"
)

// startSessionRequest is the body for POST /v1/sessions.
type startSessionRequest struct {
	Vehicle  shindan.VehicleInfo     `json:"vehicle"`
	Symptoms []string                `json:"symptoms"`
	Sensors  []shindan.SensorReading `json:"sensors"`
}

// observeRequest is the body for POST /v1/sessions/{session_id}/observations.
// Exactly one of EvidenceType, DTC, or Symptom must be set. Observed defaults
// to true and only applies to EvidenceType observations.
type observeRequest struct {
	EvidenceType string `json:"evidence_type,omitempty"`
	Observed     *bool  `json:"observed,omitempty"`
	Notes        string `json:"notes,omitempty"`
	DTC          string `json:"dtc,omitempty"`
	Symptom      string `json:"symptom,omitempty"`
}

type sessionResponse struct {
	Session        shindan.SessionSnapshot `json:"session"`
	Recommendation *shindan.NextTest       `json:"recommendation,omitempty"`
}

// HandleStartSession handles POST /v1/sessions.
func (h *Handlers) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, errCodeBadRequest, "invalid request body: "+err.Error())
		return
	}

	s := h.engine.StartSession(req.Vehicle, req.Symptoms, req.Sensors)
	h.mu.Lock()
	h.live[s.ID()] = s
	h.mu.Unlock()
	h.persist(r.Context(), s)

	if counter, err := diagMeter.Int64Counter("shindan.sessions.started"); err == nil {
		counter.Add(r.Context(), 1)
	}

	writeJSON(w, r, http.StatusCreated, sessionResponse{
		Session:        h.engine.Snapshot(s),
		Recommendation: h.engine.RecommendTest(s),
	})
}

// HandleObserve handles POST /v1/sessions/{session_id}/observations.
func (h *Handlers) HandleObserve(w http.ResponseWriter, r *http.Request) {
	s, ok := h.liveSession(w, r)
	if !ok {
		return
	}

	var req observeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, errCodeBadRequest, "invalid request body: "+err.Error())
		return
	}

	set := 0
	for _, v := range []string{req.EvidenceType, req.DTC, req.Symptom} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		writeError(w, r, http.StatusBadRequest, errCodeBadRequest,
			"exactly one of evidence_type, dtc, or symptom is required")
		return
	}

	switch {
	case req.EvidenceType != "":
		observed := true
		if req.Observed != nil {
			observed = *req.Observed
		}
		h.engine.Observe(s, req.EvidenceType, observed, req.Notes)
	case req.DTC != "":
		if !h.engine.ObserveDTC(s, req.DTC) {
			writeError(w, r, http.StatusBadRequest, errCodeBadRequest, "unrecognized DTC "+req.DTC)
			return
		}
	default:
		if !h.engine.ObserveSymptom(s, req.Symptom) {
			writeError(w, r, http.StatusBadRequest, errCodeBadRequest, "symptom matched no known pattern")
			return
		}
	}

	h.persist(r.Context(), s)
	writeJSON(w, r, http.StatusOK, sessionResponse{
		Session:        h.engine.Snapshot(s),
		Recommendation: h.engine.RecommendTest(s),
	})
}

// HandleRecommendation handles GET /v1/sessions/{session_id}/recommendation.
func (h *Handlers) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	s, ok := h.liveSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"recommendation": h.engine.RecommendTest(s),
	})
}

// HandleConclude handles POST /v1/sessions/{session_id}/conclude.
func (h *Handlers) HandleConclude(w http.ResponseWriter, r *http.Request) {
	s, ok := h.liveSession(w, r)
	if !ok {
		return
	}
	c := h.engine.Conclude(s)
	h.persist(r.Context(), s)
	writeJSON(w, r, http.StatusOK, c)
}

// HandleExplain handles GET /v1/sessions/{session_id}/explain.
func (h *Handlers) HandleExplain(w http.ResponseWriter, r *http.Request) {
	s, ok := h.liveSession(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.engine.Explain(s)))
}

// HandleGetSession handles GET /v1/sessions/{session_id}. Live sessions are
// rendered from memory; others fall back to the stored snapshot.
func (h *Handlers) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("session_id")

	h.mu.Lock()
	s, isLive := h.live[id]
	h.mu.Unlock()
	if isLive {
		writeJSON(w, r, http.StatusOK, h.engine.Snapshot(s))
		return
	}

	if h.db == nil {
		writeError(w, r, http.StatusNotFound, errCodeNotFound, "session not found")
		return
	}
	rec, err := h.db.GetSession(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, errCodeNotFound, "session not found")
		return
	}
	if err != nil {
		h.logger.Error("get session failed", "error", err, "session", id)
		writeError(w, r, http.StatusInternalServerError, errCodeInternal, "session lookup failed")
		return
	}

	var snap shindan.SessionSnapshot
	if err := json.Unmarshal(rec.Payload, &snap); err != nil {
		h.logger.Error("stored session payload corrupt", "error", err, "session", id)
		writeError(w, r, http.StatusInternalServerError, errCodeInternal, "stored session unreadable")
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

// sessionSummary is the list-view projection of a stored session.
type sessionSummary struct {
	ID         string              `json:"id"`
	Vehicle    shindan.VehicleInfo `json:"vehicle"`
	Diagnosis  string              `json:"diagnosis,omitempty"`
	Confidence float64             `json:"confidence"`
	Concluded  bool                `json:"concluded"`
	StartedAt  string              `json:"started_at"`
}

// HandleListSessions handles GET /v1/sessions.
func (h *Handlers) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		h.mu.Lock()
		out := make([]sessionSummary, 0, len(h.live))
		for _, s := range h.live {
			out = append(out, summaryFromSnapshot(h.engine.Snapshot(s)))
		}
		h.mu.Unlock()
		writeJSON(w, r, http.StatusOK, out)
		return
	}

	recs, err := h.db.ListSessions(r.Context(), 100, 0)
	if err != nil {
		h.logger.Error("list sessions failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, errCodeInternal, "session listing failed")
		return
	}
	out := make([]sessionSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, sessionSummary{
			ID: rec.ID,
			Vehicle: shindan.VehicleInfo{
				Make:  rec.VehicleMake,
				Model: rec.VehicleModel,
				Year:  rec.VehicleYear,
				VIN:   rec.VIN,
			},
			Diagnosis:  rec.Diagnosis,
			Confidence: rec.Confidence,
			Concluded:  rec.Concluded,
			StartedAt:  rec.StartedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, r, http.StatusOK, out)
}

// HandleDeleteSession handles DELETE /v1/sessions/{session_id}.
func (h *Handlers) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("session_id")

	h.mu.Lock()
	delete(h.live, id)
	h.mu.Unlock()

	if h.db != nil {
		if err := h.db.DeleteSession(r.Context(), id); err != nil {
			h.logger.Error("delete session failed", "error", err, "session", id)
			writeError(w, r, http.StatusInternalServerError, errCodeInternal, "session delete failed")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// liveSession resolves the path's session ID to a resident session, writing
// the appropriate error when it cannot.
func (h *Handlers) liveSession(w http.ResponseWriter, r *http.Request) (*shindan.Session, bool) {
	id := r.PathValue("session_id")
	h.mu.Lock()
	s, ok := h.live[id]
	h.mu.Unlock()
	if ok {
		return s, true
	}

	if h.db != nil {
		if _, err := h.db.GetSession(r.Context(), id); err == nil {
			// Stored but no longer resident: readable, not mutable.
			writeError(w, r, http.StatusConflict, errCodeConflict, "session is no longer active")
			return nil, false
		}
	}
	writeError(w, r, http.StatusNotFound, errCodeNotFound, "session not found")
	return nil, false
}

// persist writes the session snapshot to storage. Best-effort: a storage
// failure is logged, never surfaced to the diagnosing client.
func (h *Handlers) persist(ctx context.Context, s *shindan.Session) {
	if h.db == nil {
		return
	}
	snap := h.engine.Snapshot(s)
	payload, err := json.Marshal(snap)
	if err != nil {
		h.logger.Error("session snapshot marshal failed", "error", err, "session", snap.ID)
		return
	}

	rec := storage.SessionRecord{
		ID:           snap.ID,
		VehicleMake:  snap.Vehicle.Make,
		VehicleModel: snap.Vehicle.Model,
		VehicleYear:  snap.Vehicle.Year,
		VIN:          snap.Vehicle.VIN,
		Concluded:    snap.Concluded,
		StartedAt:    snap.StartedAt,
		Payload:      payload,
	}
	if snap.Conclusion != nil {
		rec.Diagnosis = snap.Conclusion.Diagnosis
		rec.Confidence = snap.Conclusion.Confidence
	} else if len(snap.TopHypotheses) > 0 {
		rec.Diagnosis = snap.TopHypotheses[0].Failure
		rec.Confidence = snap.TopHypotheses[0].Probability
	}

	if err := h.db.SaveSession(ctx, rec); err != nil {
		h.logger.Error("session persist failed", "error", err, "session", snap.ID)
	}
}

// PurgeExpiredSessions deletes concluded sessions last updated before the
// cutoff. Called periodically by the serve loop.
func (h *Handlers) PurgeExpiredSessions(ctx context.Context, cutoff time.Time) {
	if h.db == nil {
		return
	}
	n, err := h.db.PurgeSessionsBefore(ctx, cutoff)
	if err != nil {
		h.logger.Warn("session purge failed", "error", err)
		return
	}
	if n > 0 {
		h.logger.Info("purged expired sessions", "count", n)
	}
}

func summaryFromSnapshot(snap shindan.SessionSnapshot) sessionSummary {
	out := sessionSummary{
		ID:        snap.ID,
		Vehicle:   snap.Vehicle,
		Concluded: snap.Concluded,
		StartedAt: snap.StartedAt.UTC().Format(time.RFC3339),
	}
	if snap.Conclusion != nil {
		out.Diagnosis = snap.Conclusion.Diagnosis
		out.Confidence = snap.Conclusion.Confidence
	} else if len(snap.TopHypotheses) > 0 {
		out.Diagnosis = snap.TopHypotheses[0].Failure
		out.Confidence = snap.TopHypotheses[0].Probability
	}
	return out
}
