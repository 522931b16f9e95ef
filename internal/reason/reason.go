// Package reason implements the Bayesian core: belief updates from evidence,
// hypothesis elimination, and expected-information-gain test selection.
//
// The Reasoner is stateless apart from the knowledge base it reads; every
// operation takes a belief state in and returns a new one, leaving the input
// untouched. Callers own all state.
package reason

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/wrenchworks-ai/shindan/internal/belief"
	"github.com/wrenchworks-ai/shindan/internal/knowledge"
)

// defaultLikelihood is the weak likelihood assumed for failures with no
// explicit entry in an evidence row. Nonzero so sparse rows never collapse a
// hypothesis to exactly zero on a single observation.
const defaultLikelihood = 0.1

// Safety-critical evidence tokens for HV isolation. Observing either one
// overrides ordinary Bayesian blending — see applySafetyOverride.
const (
	EvidenceIsolationSensor = "insulation_resistance_low"
	EvidenceIsolationDTC    = "dtc_insulation_resistance_low"
)

const (
	isolationBoostSingle = 0.99
	isolationBoostBoth   = 0.995
)

// TestRecommendation is the reasoner's suggestion for the next most
// informative observation.
type TestRecommendation struct {
	Test             string  `json:"test"`
	ExpectedInfoGain float64 `json:"expected_info_gain"`
	Description      string  `json:"description"`
}

// Reasoner applies Bayes' rule over the knowledge base's likelihood table.
// Safe for concurrent use; it only reads the (immutable) knowledge base.
type Reasoner struct {
	kb     *knowledge.Base
	logger *slog.Logger
}

// New creates a Reasoner over the given knowledge base.
func New(kb *knowledge.Base, logger *slog.Logger) *Reasoner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reasoner{kb: kb, logger: logger}
}

// NewInitialState builds the starting belief distribution: uniform over the
// failure catalog when priors is empty, otherwise seeded from priors (e.g.
// an ML classifier's output). Prior keys outside the catalog are kept as
// extra hypotheses so a caller-supplied class list is never silently pruned.
func (r *Reasoner) NewInitialState(priors map[string]float64) *belief.State {
	ids := r.kb.FailureIDs()
	if len(priors) == 0 {
		return belief.Uniform(ids)
	}
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	extra := make([]string, 0)
	for id := range priors {
		if _, ok := known[id]; !ok {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return belief.New(append(ids, extra...), priors)
}

// Update applies one piece of evidence and returns the posterior state.
// The input state is never mutated.
//
// For each hypothesis not ruled out, the prior is multiplied by the row's
// likelihood (or defaultLikelihood when the row has no entry); observed=false
// uses the complement. Evidence types absent from the table skip the numeric
// step entirely but are still logged with impact "unknown".
func (r *Reasoner) Update(s *belief.State, evidenceType string, observed bool) *belief.State {
	return r.update(s, evidenceType, observed, "")
}

// UpdateWithNotes is Update with a free-text note attached to the log entry.
func (r *Reasoner) UpdateWithNotes(s *belief.State, evidenceType string, observed bool, notes string) *belief.State {
	return r.update(s, evidenceType, observed, notes)
}

func (r *Reasoner) update(s *belief.State, evidenceType string, observed bool, notes string) *belief.State {
	next := s.Copy()

	row, known := r.kb.Likelihood[evidenceType]
	impact := belief.ImpactUpdated
	if !known {
		impact = belief.ImpactUnknown
		r.logger.Debug("reason: unknown evidence type", "evidence", evidenceType)
	}

	if known {
		for _, id := range next.Order() {
			if _, ruled := next.RuledOut[id]; ruled {
				next.Probabilities[id] = 0
				continue
			}
			likelihood, ok := row[id]
			if !ok {
				likelihood = defaultLikelihood
			}
			if !observed {
				likelihood = 1 - likelihood
			}
			next.Probabilities[id] *= likelihood
		}
		next.Normalize()
	}

	next.Evidence = append(next.Evidence, belief.EvidenceEntry{
		Type:     evidenceType,
		Observed: observed,
		Impact:   impact,
		Notes:    notes,
		At:       time.Now().UTC(),
	})

	if observed && (evidenceType == EvidenceIsolationSensor || evidenceType == EvidenceIsolationDTC) {
		r.applySafetyOverride(next)
	}
	return next
}

// applySafetyOverride pins the HV isolation hypothesis to near-certainty
// once isolation evidence is observed, suppressing everything else.
//
// This is a deliberate non-Bayesian step: an isolation fault is a shock
// hazard, and no amount of statistical blending with benign hypotheses is
// acceptable once the dedicated evidence is present. The boost increases
// when both the sensor reading and the DTC corroborate.
func (r *Reasoner) applySafetyOverride(s *belief.State) {
	if _, ruled := s.RuledOut[knowledge.FailureHVIsolation]; ruled {
		return
	}
	if _, exists := s.Probabilities[knowledge.FailureHVIsolation]; !exists {
		return
	}

	boost := isolationBoostSingle
	if s.Observed(EvidenceIsolationSensor) && s.Observed(EvidenceIsolationDTC) {
		boost = isolationBoostBoth
	}

	var others float64
	for id, p := range s.Probabilities {
		if id != knowledge.FailureHVIsolation {
			others += p
		}
	}
	if others > 0 {
		scale := (1 - boost) / others
		for id, p := range s.Probabilities {
			if id != knowledge.FailureHVIsolation {
				s.Probabilities[id] = p * scale
			}
		}
	}
	s.Probabilities[knowledge.FailureHVIsolation] = boost
	s.Normalize()
	r.logger.Warn("reason: HV isolation safety override applied",
		"probability", boost)
}

// RuleOut permanently zeroes a hypothesis and renormalizes. Idempotent;
// the input state is never mutated.
func (r *Reasoner) RuleOut(s *belief.State, failureID string) *belief.State {
	next := s.Copy()
	next.RuledOut[failureID] = struct{}{}
	if _, ok := next.Probabilities[failureID]; ok {
		next.Probabilities[failureID] = 0
		next.Normalize()
	}
	return next
}

// minAmbiguity is the probability floor for counting a hypothesis as still
// in contention when deciding whether another test is worth running.
const minAmbiguity = 0.05

// BestTest picks the unobserved evidence type with the greatest expected
// entropy reduction, via one-step lookahead over both outcomes. Returns nil
// when fewer than two non-normal hypotheses remain in contention among the
// top five — there is no ambiguity left for a test to resolve.
func (r *Reasoner) BestTest(s *belief.State) *TestRecommendation {
	contenders := 0
	for _, h := range s.TopHypotheses(5) {
		if h.Failure != knowledge.FailureNormal && h.Probability >= minAmbiguity {
			contenders++
		}
	}
	if contenders < 2 {
		return nil
	}

	currentEntropy := s.Entropy()

	candidates := r.kb.EvidenceTypes()
	sort.Strings(candidates)

	var best *TestRecommendation
	for _, evidenceType := range candidates {
		if s.Observed(evidenceType) {
			continue
		}
		row := r.kb.Likelihood[evidenceType]

		// Marginal probability of observing this evidence under the
		// current belief.
		var pEvidence float64
		for id, p := range s.Probabilities {
			likelihood, ok := row[id]
			if !ok {
				likelihood = defaultLikelihood
			}
			pEvidence += likelihood * p
		}
		if pEvidence <= 0 || pEvidence >= 1 {
			continue
		}

		hObserved := r.Update(s, evidenceType, true).Entropy()
		hAbsent := r.Update(s, evidenceType, false).Entropy()
		expected := pEvidence*hObserved + (1-pEvidence)*hAbsent

		gain := currentEntropy - expected
		if gain < 0 {
			gain = 0
		}
		if best == nil || gain > best.ExpectedInfoGain {
			best = &TestRecommendation{
				Test:             evidenceType,
				ExpectedInfoGain: gain,
				Description:      describeTest(evidenceType),
			}
		}
	}
	return best
}

func describeTest(evidenceType string) string {
	return "Check for " + strings.ReplaceAll(evidenceType, "_", " ")
}
