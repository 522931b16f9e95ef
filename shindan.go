// Package shindan is the public API for embedding the Shindan vehicle
// diagnostics engine.
//
// Consumers construct an Engine once and run one-shot diagnoses or
// multi-turn sessions against it:
//
//	eng, err := shindan.New(
//	    shindan.WithLogger(logger),
//	    shindan.WithClassifierModel("model.json"),
//	)
//	if err != nil { ... }
//	result := eng.Diagnose(shindan.Input{
//	    Sensors: []shindan.SensorReading{{Name: "coolant_temp", Value: 118}},
//	    DTCs:    []string{"P0217"},
//	})
//
// Public types (Result, Conclusion, etc.) are standalone structs with no
// internal imports; conversion helpers live here because this is the only
// file that sees both sides of the boundary.
package shindan

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/wrenchworks-ai/shindan/internal/belief"
	"github.com/wrenchworks-ai/shindan/internal/classifier"
	"github.com/wrenchworks-ai/shindan/internal/diagnose"
	"github.com/wrenchworks-ai/shindan/internal/knowledge"
	"github.com/wrenchworks-ai/shindan/internal/reason"
)

// mlPriorWeight blends classifier output with the uniform prior when seeding
// a belief state. Half weight keeps a confident classifier influential while
// never zeroing hypotheses outside the trained class set.
const mlPriorWeight = 0.5

// mlOverrideThreshold is the classifier probability above which, with no
// extracted evidence at all, the diagnosis is taken from the classifier
// alone. Below it an evidence-free input stays inconclusive.
const mlOverrideThreshold = 0.85

// Engine is the diagnostics engine. Construct with New; safe for concurrent
// use. Engine has no public fields — use New() options to configure it.
type Engine struct {
	kb        *knowledge.Base
	reasoner  *reason.Reasoner
	diag      *diagnose.Diagnostician
	clf       *classifier.Classifier // nil when no model configured
	logger    *slog.Logger
	threshold float64
}

// Session is one multi-turn diagnostic interview, owned by the Engine that
// created it. Not safe for concurrent use.
type Session struct {
	inner *diagnose.Session
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.inner.ID.String() }

// Concluded reports whether the session has reached a conclusion.
func (s *Session) Concluded() bool { return s.inner.Concluded() }

// New builds an Engine: the built-in knowledge base, optionally merged with
// a YAML overlay, plus an optional trained classifier model.
func New(opts ...Option) (*Engine, error) {
	o := resolvedOptions{confidenceThreshold: diagnose.ConfidenceThreshold}
	for _, fn := range opts {
		fn(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}
	if o.confidenceThreshold <= 0 || o.confidenceThreshold > 1 {
		return nil, fmt.Errorf("shindan: confidence threshold %v outside (0,1]", o.confidenceThreshold)
	}

	kb := knowledge.Default()
	if o.overlayPath != "" {
		overlay, err := knowledge.LoadOverlay(o.overlayPath)
		if err != nil {
			return nil, fmt.Errorf("shindan: knowledge overlay: %w", err)
		}
		kb.Merge(overlay)
		logger.Info("knowledge overlay merged", "path", o.overlayPath)
	}

	var clf *classifier.Classifier
	if o.modelPath != "" {
		var err error
		clf, err = classifier.Load(o.modelPath, kb.BaselineFeatures)
		if err != nil {
			return nil, fmt.Errorf("shindan: classifier model: %w", err)
		}
		logger.Info("classifier model loaded", "path", o.modelPath, "classes", len(clf.Classes()))
	}

	r := reason.New(kb, logger)
	return &Engine{
		kb:        kb,
		reasoner:  r,
		diag:      diagnose.New(kb, r, logger),
		clf:       clf,
		logger:    logger,
		threshold: o.confidenceThreshold,
	}, nil
}

// Diagnose runs a one-shot diagnosis over the input. It never fails on
// unrecognized sensors, codes, or symptom text: unusable input is dropped
// (unknown DTCs are reported back) and the result degrades to an earlier
// phase instead of erroring.
func (e *Engine) Diagnose(input Input) *Result {
	tokens, unknownDTCs := e.extractEvidence(input)

	var mlScores map[string]float64
	features := featureVector(input.Sensors)
	if e.clf != nil && len(features) > 0 {
		mlScores = e.clf.Scores(features)
	}

	// Classifier-only shortcut: with no extractable evidence, a sufficiently
	// confident classifier carries the diagnosis by itself.
	if len(tokens) == 0 && mlScores != nil {
		if pred := e.clf.PredictTop(features); pred.Probability > mlOverrideThreshold {
			e.logger.Info("diagnosis from classifier only",
				"class", pred.Class, "probability", pred.Probability)
			top := belief.Hypothesis{Failure: pred.Class, Probability: pred.Probability}
			return e.buildResult(e.seededState(mlScores), top, tokens, unknownDTCs, mlScores)
		}
	}

	state := e.seededState(mlScores)
	for _, token := range tokens {
		state = e.reasoner.Update(state, token, true)
	}

	top, ok := state.MaxHypothesis()
	if !ok {
		top = belief.Hypothesis{Failure: diagnose.FailureUnknown}
	}
	return e.buildResult(state, top, tokens, unknownDTCs, mlScores)
}

func (e *Engine) buildResult(state *belief.State, top belief.Hypothesis, tokens, unknownDTCs []string, mlScores map[string]float64) *Result {
	res := &Result{
		Diagnosis:   top.Failure,
		Description: e.kb.Describe(top.Failure),
		Confidence:  top.Probability,
		Evidence:    tokens,
		UnknownDTCs: unknownDTCs,
		EntropyBits: state.Entropy(),
	}
	if f, ok := e.kb.Lookup(top.Failure); ok {
		res.DiscriminatingTests = append([]string(nil), f.DiscriminatingTests...)
		res.RepairEstimate = f.CostEstimate
	}
	if mlScores != nil {
		res.MLScores = &MLScores{
			Failures: mlScores,
			Systems: classifier.AggregateBySystem(mlScores, func(class string) string {
				f, _ := e.kb.Lookup(class)
				return f.System
			}),
		}
	}

	switch {
	case len(tokens) == 0 && mlScores == nil:
		res.Phase = PhaseInitial
	case top.Probability >= e.threshold:
		res.Phase = PhaseConfident
	default:
		res.Phase = PhaseInvestigating
	}

	for i, h := range state.TopHypotheses(5) {
		if i == 0 || h.Probability <= 0.01 || len(res.Alternatives) >= 3 {
			continue
		}
		res.Alternatives = append(res.Alternatives, Alternative{
			Failure:     h.Failure,
			Description: e.kb.Describe(h.Failure),
			Probability: h.Probability,
		})
	}

	if res.Phase == PhaseConfident {
		res.RecommendedActions = e.kb.RepairActions(top.Failure)
	} else if rec := e.reasoner.BestTest(state); rec != nil {
		res.NextTest = &NextTest{
			Test:             rec.Test,
			Description:      rec.Description,
			ExpectedInfoGain: rec.ExpectedInfoGain,
		}
	}
	return res
}

// seededState builds the initial belief state, blending classifier scores
// into the uniform prior when available.
func (e *Engine) seededState(mlScores map[string]float64) *belief.State {
	if len(mlScores) == 0 {
		return e.reasoner.NewInitialState(nil)
	}
	ids := e.kb.FailureIDs()
	uniform := 1.0 / float64(len(ids))
	priors := make(map[string]float64, len(ids))
	for _, id := range ids {
		priors[id] = (1 - mlPriorWeight) * uniform
	}
	for class, p := range mlScores {
		priors[class] += mlPriorWeight * p
	}
	return e.reasoner.NewInitialState(priors)
}

// extractEvidence converts raw input into evidence tokens: sensor threshold
// crossings, the combined fuel-trim token, DTC lookups, then symptom matches.
// Order is preserved and duplicates are dropped.
func (e *Engine) extractEvidence(input Input) (tokens, unknownDTCs []string) {
	var stft, ltft float64
	var haveTrim bool

	for _, r := range input.Sensors {
		name := knowledge.NormalizeSensorName(r.Name)
		switch name {
		case knowledge.SensorSTFT:
			stft, haveTrim = r.Value, true
		case knowledge.SensorLTFT:
			ltft, haveTrim = r.Value, true
		}
		if token, ok := e.kb.SensorToken(name, r.Value); ok {
			tokens = append(tokens, token)
		}
	}

	if haveTrim {
		total := math.Abs(stft) + math.Abs(ltft)
		if total >= knowledge.FuelTrimHighThreshold {
			tokens = append(tokens, knowledge.TokenHighTotalFuelTrim)
		} else if total >= knowledge.FuelTrimModerateThreshold {
			tokens = append(tokens, knowledge.TokenModerateTotalFuelTrim)
		}
	}

	for _, code := range input.DTCs {
		if token, ok := e.kb.DTCToken(code); ok {
			tokens = append(tokens, token)
		} else {
			e.logger.Debug("unknown DTC ignored", "code", code)
			unknownDTCs = append(unknownDTCs, code)
		}
	}

	for _, symptom := range input.Symptoms {
		if token, ok := e.kb.MatchSymptom(symptom); ok {
			tokens = append(tokens, token)
		} else {
			e.logger.Debug("unmatched symptom ignored", "symptom", symptom)
		}
	}

	return dedupe(tokens), unknownDTCs
}

// StartSession opens a multi-turn session. Sensor readings are applied as
// initial evidence; when a classifier model is configured its scores seed
// the prior.
func (e *Engine) StartSession(vehicle VehicleInfo, symptoms []string, sensors []SensorReading) *Session {
	var priors map[string]float64
	features := featureVector(sensors)
	if e.clf != nil && len(features) > 0 {
		seeded := e.seededState(e.clf.PriorDistribution(features))
		priors = seeded.Probabilities
	}

	inner := e.diag.StartSession(diagnose.VehicleInfo{
		Make:  vehicle.Make,
		Model: vehicle.Model,
		Year:  vehicle.Year,
		VIN:   vehicle.VIN,
	}, symptoms, priors)

	tokens, _ := e.extractEvidence(Input{Sensors: sensors})
	for _, token := range tokens {
		e.diag.RecordObservation(inner, token, true, "sensor reading")
	}
	return &Session{inner: inner}
}

// Observe records one evidence observation on a session.
func (e *Engine) Observe(s *Session, evidenceType string, observed bool, notes string) {
	e.diag.RecordObservation(s.inner, evidenceType, observed, notes)
}

// ObserveDTC records a trouble code on a session. Unknown codes are
// evidence-silent; the return value reports whether the code was recognized.
func (e *Engine) ObserveDTC(s *Session, code string) bool {
	token, ok := e.kb.DTCToken(code)
	if !ok {
		e.logger.Debug("unknown DTC ignored", "session", s.ID(), "code", code)
		return false
	}
	e.diag.RecordObservation(s.inner, token, true, "DTC "+code)
	return true
}

// ObserveSymptom records free-text symptom description on a session. The
// return value reports whether the text matched the vocabulary.
func (e *Engine) ObserveSymptom(s *Session, text string) bool {
	token, ok := e.kb.MatchSymptom(text)
	if !ok {
		return false
	}
	e.diag.RecordObservation(s.inner, token, true, "symptom: "+text)
	return true
}

// RuleOut eliminates a hypothesis for the remainder of a session.
func (e *Engine) RuleOut(s *Session, failureID string) {
	e.diag.RuleOut(s.inner, failureID)
}

// RecommendTest suggests the next most informative observation, or nil when
// the session has concluded or no ambiguity remains.
func (e *Engine) RecommendTest(s *Session) *NextTest {
	rec := e.diag.RecommendTest(s.inner)
	if rec == nil {
		return nil
	}
	return &NextTest{
		Test:             rec.Test,
		Description:      rec.Description,
		ExpectedInfoGain: rec.ExpectedInfoGain,
	}
}

// Conclude returns the session's conclusion, forcing one if the session has
// not concluded on its own.
func (e *Engine) Conclude(s *Session) *Conclusion {
	c := s.inner.Conclusion
	if c == nil {
		c = e.diag.ForceConclusion(s.inner)
	}
	return toPublicConclusion(c)
}

// Explain renders the session's reasoning trail as human-readable text.
func (e *Engine) Explain(s *Session) string {
	return e.diag.ExplainReasoning(s.inner)
}

// Snapshot captures the session's externally visible state for persistence
// or API responses. The snapshot is a copy; mutating it has no effect on the
// session.
func (e *Engine) Snapshot(s *Session) SessionSnapshot {
	inner := s.inner
	snap := SessionSnapshot{
		ID:              inner.ID.String(),
		Vehicle:         VehicleInfo(inner.Vehicle),
		InitialSymptoms: append([]string(nil), inner.InitialSymptoms...),
		StartedAt:       inner.StartedAt,
		Concluded:       inner.Concluded(),
		EntropyBits:     inner.Current().Entropy(),
	}
	for _, o := range inner.Observations {
		snap.Observations = append(snap.Observations, ObservationRecord{
			EvidenceType: o.EvidenceType,
			Observed:     o.Observed,
			Notes:        o.Notes,
			At:           o.At,
		})
	}
	for _, h := range inner.Current().TopHypotheses(5) {
		if h.Probability <= 0.01 {
			continue
		}
		snap.TopHypotheses = append(snap.TopHypotheses, Alternative{
			Failure:     h.Failure,
			Description: e.kb.Describe(h.Failure),
			Probability: h.Probability,
		})
	}
	if inner.Conclusion != nil {
		snap.Conclusion = toPublicConclusion(inner.Conclusion)
	}
	return snap
}

// Failures returns the failure-mode catalog in catalog order, including any
// overlay additions.
func (e *Engine) Failures() []FailureInfo {
	out := make([]FailureInfo, 0, len(e.kb.Failures))
	for _, f := range e.kb.Failures {
		out = append(out, FailureInfo{
			ID:                  f.ID,
			System:              f.System,
			Description:         f.Description,
			RepairActions:       append([]string(nil), f.RepairActions...),
			DiscriminatingTests: append([]string(nil), f.DiscriminatingTests...),
			CostEstimate:        f.CostEstimate,
		})
	}
	return out
}

// ── Conversion helpers ─────────────────────────────────────────────────────

func toPublicConclusion(c *diagnose.Conclusion) *Conclusion {
	out := &Conclusion{
		Diagnosis:          c.PrimaryDiagnosis,
		Description:        c.PrimaryDescription,
		Confidence:         c.Confidence,
		IsConclusive:       c.IsConclusive,
		Forced:             c.Forced,
		SupportingEvidence: append([]string(nil), c.SupportingEvidence...),
		RecommendedActions: append([]string(nil), c.RecommendedActions...),
		Report:             c.String(),
	}
	for _, a := range c.Alternatives {
		out.Alternatives = append(out.Alternatives, Alternative{
			Failure:     a.Failure,
			Probability: a.Probability,
		})
	}
	return out
}

func featureVector(sensors []SensorReading) map[string]float64 {
	if len(sensors) == 0 {
		return nil
	}
	out := make(map[string]float64, len(sensors))
	for _, r := range sensors {
		out[knowledge.NormalizeSensorName(r.Name)] = r.Value
	}
	return out
}

func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
