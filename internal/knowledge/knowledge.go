// Package knowledge holds the static diagnostic knowledge base: the failure
// catalog, the evidence likelihood table, and the lookup tables that turn raw
// sensor readings, DTC codes, and symptom text into evidence tokens.
//
// The tables are literal data, not a rules engine. Values were tuned against
// recorded shop sessions; changing them changes diagnostic outcomes, so they
// are kept as plain Go literals where a diff is reviewable.
package knowledge

import "fmt"

// Failure describes one failure-mode hypothesis in the belief distribution.
type Failure struct {
	ID                  string
	System              string
	Description         string
	RepairActions       []string
	DiscriminatingTests []string
	CostEstimate        string
}

// Threshold is one side of a sensor rule: crossing Value yields Token.
type Threshold struct {
	Value float64
	Token string
}

// SensorRule maps a normalized sensor name to evidence tokens.
// High is checked before Low; the first crossing wins.
type SensorRule struct {
	High *Threshold
	Low  *Threshold
}

// DTCInfo maps a diagnostic trouble code to its evidence token and system.
type DTCInfo struct {
	Token       string
	System      string
	Description string
}

// Base is the assembled knowledge base. Construct with Default, optionally
// merge an overlay, then treat as read-only; it is shared across goroutines.
type Base struct {
	Failures   []Failure
	Likelihood map[string]map[string]float64
	DTCs       map[string]DTCInfo
	Sensors    map[string]SensorRule
	Symptoms   map[string]string

	// BaselineFeatures is a healthy warm-idle reading for every sensor the
	// classifier expects, used to fill gaps in the feature vector.
	BaselineFeatures map[string]float64

	byID map[string]*Failure
}

// Default returns the built-in knowledge base.
func Default() *Base {
	b := &Base{
		Failures:         failureCatalog(),
		Likelihood:       likelihoodTable(),
		DTCs:             dtcTable(),
		Sensors:          sensorRules(),
		Symptoms:         symptomVocabulary(),
		BaselineFeatures: baselineFeatures(),
	}
	b.index()
	return b
}

func (b *Base) index() {
	b.byID = make(map[string]*Failure, len(b.Failures))
	for i := range b.Failures {
		b.byID[b.Failures[i].ID] = &b.Failures[i]
	}
}

// FailureIDs returns every hypothesis ID in catalog order.
func (b *Base) FailureIDs() []string {
	ids := make([]string, len(b.Failures))
	for i, f := range b.Failures {
		ids[i] = f.ID
	}
	return ids
}

// Lookup returns the catalog entry for a failure ID.
func (b *Base) Lookup(id string) (Failure, bool) {
	f, ok := b.byID[id]
	if !ok {
		return Failure{}, false
	}
	return *f, true
}

// Describe returns a human-readable description for a failure ID, falling
// back to the ID itself for hypotheses outside the catalog (e.g. ML-seeded).
func (b *Base) Describe(id string) string {
	if f, ok := b.byID[id]; ok {
		return f.Description
	}
	return id
}

// RepairActions returns the recommended actions for a failure, or a generic
// further-diagnosis message when the catalog has no entry.
func (b *Base) RepairActions(id string) []string {
	if f, ok := b.byID[id]; ok && len(f.RepairActions) > 0 {
		return f.RepairActions
	}
	return []string{fmt.Sprintf("Further diagnosis required for %s", id)}
}

// KnowsEvidence reports whether the likelihood table has a row for the token.
func (b *Base) KnowsEvidence(token string) bool {
	_, ok := b.Likelihood[token]
	return ok
}

// EvidenceTypes returns every evidence token the likelihood table covers.
// Order is not defined; callers needing determinism must sort.
func (b *Base) EvidenceTypes() []string {
	out := make([]string, 0, len(b.Likelihood))
	for t := range b.Likelihood {
		out = append(out, t)
	}
	return out
}
