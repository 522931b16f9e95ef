// Package diagnose orchestrates multi-turn diagnostic sessions on top of the
// Bayesian reasoner: it owns session state, records observations against an
// append-only belief history, decides when a conclusion is warranted, and
// renders the reasoning trail for humans.
package diagnose

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wrenchworks-ai/shindan/internal/belief"
	"github.com/wrenchworks-ai/shindan/internal/knowledge"
	"github.com/wrenchworks-ai/shindan/internal/reason"
)

// Conclusion thresholds. A session concludes automatically once the leading
// hypothesis clears ConfidenceThreshold; ConclusiveThreshold marks the
// conclusion as settled rather than provisional.
const (
	ConfidenceThreshold = 0.7
	ConclusiveThreshold = 0.85
)

// forcedIsolationConfidence is reported when a conclusion is forced while
// both HV isolation evidence kinds are on record. The number is deliberately
// fixed rather than read from the belief state: the override exists so that a
// later, unrelated observation can never dilute the safety call.
const forcedIsolationConfidence = 0.95

// FailureUnknown is the conclusion reached when no hypothesis carries mass.
const FailureUnknown = "unknown"

// VehicleInfo identifies the vehicle under diagnosis.
type VehicleInfo struct {
	Make  string `json:"make,omitempty"`
	Model string `json:"model,omitempty"`
	Year  int    `json:"year,omitempty"`
	VIN   string `json:"vin,omitempty"`
}

// Observation is one recorded session input, kept alongside the belief
// history so the full interview can be replayed.
type Observation struct {
	EvidenceType string    `json:"evidence_type"`
	Observed     bool      `json:"observed"`
	Notes        string    `json:"notes,omitempty"`
	At           time.Time `json:"at"`
}

// Session is one diagnostic interview. The belief history is append-only;
// BeliefHistory[0] is the initial prior and the last entry is current belief.
// Sessions are not safe for concurrent use; callers serialize access.
type Session struct {
	ID              uuid.UUID      `json:"id"`
	Vehicle         VehicleInfo    `json:"vehicle"`
	InitialSymptoms []string       `json:"initial_symptoms,omitempty"`
	BeliefHistory   []*belief.State `json:"-"`
	Observations    []Observation  `json:"observations"`
	Conclusion      *Conclusion    `json:"conclusion,omitempty"`
	StartedAt       time.Time      `json:"started_at"`
}

// Current returns the latest belief state.
func (s *Session) Current() *belief.State {
	return s.BeliefHistory[len(s.BeliefHistory)-1]
}

// Concluded reports whether the session has reached a conclusion.
func (s *Session) Concluded() bool {
	return s.Conclusion != nil
}

// Diagnostician runs sessions. Safe for concurrent use across distinct
// sessions; it holds no per-session state.
type Diagnostician struct {
	kb       *knowledge.Base
	reasoner *reason.Reasoner
	logger   *slog.Logger
}

// New creates a Diagnostician.
func New(kb *knowledge.Base, r *reason.Reasoner, logger *slog.Logger) *Diagnostician {
	if logger == nil {
		logger = slog.Default()
	}
	return &Diagnostician{kb: kb, reasoner: r, logger: logger}
}

// StartSession opens a session, seeds the belief state from priors (uniform
// when empty), and applies any initial symptoms that match the vocabulary.
// Symptoms that match nothing are kept verbatim in InitialSymptoms but leave
// belief untouched.
func (d *Diagnostician) StartSession(vehicle VehicleInfo, symptoms []string, priors map[string]float64) *Session {
	s := &Session{
		ID:              uuid.New(),
		Vehicle:         vehicle,
		InitialSymptoms: append([]string(nil), symptoms...),
		StartedAt:       time.Now().UTC(),
	}
	s.BeliefHistory = append(s.BeliefHistory, d.reasoner.NewInitialState(priors))

	for _, symptom := range symptoms {
		token, ok := d.kb.MatchSymptom(symptom)
		if !ok {
			d.logger.Debug("diagnose: unmatched symptom", "session", s.ID, "symptom", symptom)
			continue
		}
		d.recordLocked(s, token, true, "initial symptom: "+symptom)
	}

	d.logger.Info("diagnose: session started",
		"session", s.ID,
		"symptoms", len(symptoms),
		"entropy", s.Current().Entropy())
	return s
}

// RecordObservation applies one evidence observation to the session, appends
// the posterior to the belief history, and concludes the session when the
// leading hypothesis clears the confidence threshold. Observations after a
// conclusion still update belief; the conclusion is not revised.
func (d *Diagnostician) RecordObservation(s *Session, evidenceType string, observed bool, notes string) {
	d.recordLocked(s, evidenceType, observed, notes)

	if !s.Concluded() {
		if c := d.checkConclusion(s); c != nil {
			s.Conclusion = c
			d.logger.Info("diagnose: session concluded",
				"session", s.ID,
				"diagnosis", c.PrimaryDiagnosis,
				"confidence", c.Confidence,
				"conclusive", c.IsConclusive)
		}
	}
}

// RecordTestResult records the outcome of a previously recommended test.
func (d *Diagnostician) RecordTestResult(s *Session, test string, positive bool) {
	d.RecordObservation(s, test, positive, "test result")
}

func (d *Diagnostician) recordLocked(s *Session, evidenceType string, observed bool, notes string) {
	next := d.reasoner.UpdateWithNotes(s.Current(), evidenceType, observed, notes)
	s.BeliefHistory = append(s.BeliefHistory, next)
	s.Observations = append(s.Observations, Observation{
		EvidenceType: evidenceType,
		Observed:     observed,
		Notes:        notes,
		At:           time.Now().UTC(),
	})
}

// RuleOut eliminates a hypothesis for the remainder of the session.
func (d *Diagnostician) RuleOut(s *Session, failureID string) {
	s.BeliefHistory = append(s.BeliefHistory, d.reasoner.RuleOut(s.Current(), failureID))
}

// RecommendTest suggests the next most informative observation, or nil when
// the session has concluded or no ambiguity remains.
func (d *Diagnostician) RecommendTest(s *Session) *reason.TestRecommendation {
	if s.Concluded() {
		return nil
	}
	return d.reasoner.BestTest(s.Current())
}

// checkConclusion returns a conclusion when the leading hypothesis clears
// the confidence threshold, nil otherwise.
func (d *Diagnostician) checkConclusion(s *Session) *Conclusion {
	top, ok := s.Current().MaxHypothesis()
	if !ok || top.Probability < ConfidenceThreshold {
		return nil
	}
	return d.synthesize(s, top)
}

// ForceConclusion concludes the session now regardless of confidence.
//
// When both the isolation sensor reading and the isolation DTC are on record,
// the conclusion is pinned to the HV isolation fault at a fixed confidence,
// independent of whatever the belief state currently says. This duplicates
// the reasoner-level override on purpose: the conclusion layer is the last
// gate before a report reaches a technician, and it must not trust that every
// upstream path applied the override.
func (d *Diagnostician) ForceConclusion(s *Session) *Conclusion {
	if s.Concluded() {
		return s.Conclusion
	}

	if d.isolationCorroborated(s) {
		c := &Conclusion{
			PrimaryDiagnosis:   knowledge.FailureHVIsolation,
			PrimaryDescription: d.kb.Describe(knowledge.FailureHVIsolation),
			Confidence:         forcedIsolationConfidence,
			RecommendedActions: d.kb.RepairActions(knowledge.FailureHVIsolation),
			SupportingEvidence: observedEvidence(s),
			IsConclusive:       true,
			Forced:             true,
			ConcludedAt:        time.Now().UTC(),
		}
		s.Conclusion = c
		d.logger.Warn("diagnose: forced HV isolation conclusion",
			"session", s.ID, "confidence", c.Confidence)
		return c
	}

	top, ok := s.Current().MaxHypothesis()
	if !ok || top.Probability <= 0 {
		c := &Conclusion{
			PrimaryDiagnosis:   FailureUnknown,
			PrimaryDescription: "No hypothesis is supported by the recorded evidence",
			Confidence:         0,
			RecommendedActions: []string{"Collect additional evidence and restart diagnosis"},
			Forced:             true,
			ConcludedAt:        time.Now().UTC(),
		}
		s.Conclusion = c
		return c
	}

	c := d.synthesize(s, top)
	c.Forced = true
	s.Conclusion = c
	return c
}

func (d *Diagnostician) isolationCorroborated(s *Session) bool {
	var sensor, dtc bool
	for _, o := range s.Observations {
		if !o.Observed {
			continue
		}
		switch o.EvidenceType {
		case reason.EvidenceIsolationSensor:
			sensor = true
		case reason.EvidenceIsolationDTC:
			dtc = true
		}
	}
	return sensor && dtc
}

func (d *Diagnostician) synthesize(s *Session, top belief.Hypothesis) *Conclusion {
	ranked := s.Current().TopHypotheses(5)

	// Alternatives are ranks 2-4 with any residual mass.
	var alts []belief.Hypothesis
	for i := 1; i < len(ranked) && i < 4; i++ {
		if ranked[i].Probability > 0 {
			alts = append(alts, ranked[i])
		}
	}

	return &Conclusion{
		PrimaryDiagnosis:   top.Failure,
		PrimaryDescription: d.kb.Describe(top.Failure),
		Confidence:         top.Probability,
		Alternatives:       alts,
		SupportingEvidence: observedEvidence(s),
		RecommendedActions: d.kb.RepairActions(top.Failure),
		IsConclusive:       top.Probability >= ConclusiveThreshold,
		ConcludedAt:        time.Now().UTC(),
	}
}

// observedEvidence lists evidence types recorded as present, in order,
// without duplicates.
func observedEvidence(s *Session) []string {
	seen := make(map[string]struct{}, len(s.Observations))
	var out []string
	for _, o := range s.Observations {
		if !o.Observed {
			continue
		}
		if _, dup := seen[o.EvidenceType]; dup {
			continue
		}
		seen[o.EvidenceType] = struct{}{}
		out = append(out, o.EvidenceType)
	}
	return out
}
