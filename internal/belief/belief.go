// Package belief models a probability distribution over failure hypotheses
// together with its evidence trail. It is pure data and math: no I/O, no
// knowledge of likelihood tables, no logging.
package belief

import (
	"math"
	"sort"
	"time"
)

// Evidence impact labels recorded in the evidence log.
const (
	ImpactUpdated = "updated"
	ImpactUnknown = "unknown"
)

// EvidenceEntry is one recorded observation.
type EvidenceEntry struct {
	Type     string    `json:"type"`
	Observed bool      `json:"observed"`
	Impact   string    `json:"impact"`
	Notes    string    `json:"notes,omitempty"`
	At       time.Time `json:"at"`
}

// Hypothesis is one ranked (failure, probability) pair.
type Hypothesis struct {
	Failure     string  `json:"failure"`
	Probability float64 `json:"probability"`
}

// State is a belief distribution over failure hypotheses.
//
// Probabilities always sum to 1 after any mutation through this package,
// except the degenerate all-zero distribution which Normalize leaves alone.
// The order slice preserves hypothesis insertion order so that ranking ties
// break deterministically.
type State struct {
	Probabilities map[string]float64
	Evidence      []EvidenceEntry
	RuledOut      map[string]struct{}

	order []string
}

// New creates a normalized state over the given distribution. Hypothesis
// order follows the ids slice; ids absent from probs start at zero.
func New(ids []string, probs map[string]float64) *State {
	s := &State{
		Probabilities: make(map[string]float64, len(ids)),
		RuledOut:      make(map[string]struct{}),
		order:         append([]string(nil), ids...),
	}
	for _, id := range ids {
		s.Probabilities[id] = probs[id]
	}
	s.Normalize()
	return s
}

// Uniform creates a uniform distribution over ids.
func Uniform(ids []string) *State {
	probs := make(map[string]float64, len(ids))
	if len(ids) > 0 {
		p := 1.0 / float64(len(ids))
		for _, id := range ids {
			probs[id] = p
		}
	}
	return New(ids, probs)
}

// Order returns hypothesis IDs in insertion order.
func (s *State) Order() []string {
	return append([]string(nil), s.order...)
}

// Normalize rescales probabilities to sum to 1. A zero (or negative) total is
// left untouched — the degenerate distribution is representable and must not
// divide by zero.
func (s *State) Normalize() {
	var total float64
	for _, p := range s.Probabilities {
		total += p
	}
	if total <= 0 {
		return
	}
	for id, p := range s.Probabilities {
		s.Probabilities[id] = p / total
	}
}

// TopHypotheses returns the n most probable hypotheses, descending.
// Ties break by insertion order (stable sort over the order slice).
func (s *State) TopHypotheses(n int) []Hypothesis {
	ranked := make([]Hypothesis, 0, len(s.order))
	for _, id := range s.order {
		ranked = append(ranked, Hypothesis{Failure: id, Probability: s.Probabilities[id]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Probability > ranked[j].Probability
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	if n < 0 {
		n = 0
	}
	return ranked[:n]
}

// Entropy returns the Shannon entropy of the distribution in bits, summing
// over nonzero probabilities only.
func (s *State) Entropy() float64 {
	var h float64
	for _, p := range s.Probabilities {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// IsConfident reports whether any hypothesis reaches the threshold.
// An empty distribution is never confident.
func (s *State) IsConfident(threshold float64) bool {
	for _, p := range s.Probabilities {
		if p >= threshold {
			return true
		}
	}
	return false
}

// MaxHypothesis returns the single most probable hypothesis, using the same
// tie-break as TopHypotheses. ok is false on an empty distribution.
func (s *State) MaxHypothesis() (Hypothesis, bool) {
	top := s.TopHypotheses(1)
	if len(top) == 0 {
		return Hypothesis{}, false
	}
	return top[0], true
}

// Observed reports whether an evidence type already appears in the log.
func (s *State) Observed(evidenceType string) bool {
	for _, e := range s.Evidence {
		if e.Type == evidenceType {
			return true
		}
	}
	return false
}

// Copy returns an independent copy: mutating the copy's probabilities,
// evidence log, or ruled-out set never affects the original. The test
// recommender relies on this to run hypothetical updates.
func (s *State) Copy() *State {
	c := &State{
		Probabilities: make(map[string]float64, len(s.Probabilities)),
		Evidence:      append([]EvidenceEntry(nil), s.Evidence...),
		RuledOut:      make(map[string]struct{}, len(s.RuledOut)),
		order:         append([]string(nil), s.order...),
	}
	for id, p := range s.Probabilities {
		c.Probabilities[id] = p
	}
	for id := range s.RuledOut {
		c.RuledOut[id] = struct{}{}
	}
	return c
}
