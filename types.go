package shindan

// Public result types. These are standalone structs with no internal imports
// so embedding consumers never touch internal packages; conversion happens in
// shindan.go, the only file that sees both sides of the boundary.

import "time"

// Phase describes how far a diagnosis has progressed.
type Phase string

const (
	// PhaseInitial means no usable evidence was extracted from the input.
	PhaseInitial Phase = "INITIAL"
	// PhaseInvestigating means evidence exists but no hypothesis is confident.
	PhaseInvestigating Phase = "INVESTIGATING"
	// PhaseConfident means the leading hypothesis cleared the confidence
	// threshold.
	PhaseConfident Phase = "CONFIDENT"
)

// SensorReading is one named measurement. Names are normalized internally
// (lowercased, underscored, aliases folded), so "Coolant Temp" and
// "coolant_temp" are the same sensor.
type SensorReading struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// VehicleInfo identifies the vehicle under diagnosis.
type VehicleInfo struct {
	Make  string `json:"make,omitempty"`
	Model string `json:"model,omitempty"`
	Year  int    `json:"year,omitempty"`
	VIN   string `json:"vin,omitempty"`
}

// Input is everything a one-shot diagnosis can consume.
type Input struct {
	Vehicle  VehicleInfo     `json:"vehicle,omitempty"`
	Sensors  []SensorReading `json:"sensors,omitempty"`
	DTCs     []string        `json:"dtcs,omitempty"`
	Symptoms []string        `json:"symptoms,omitempty"`
}

// Alternative is a non-primary hypothesis still carrying probability mass.
type Alternative struct {
	Failure     string  `json:"failure"`
	Description string  `json:"description"`
	Probability float64 `json:"probability"`
}

// NextTest is the recommended next observation.
type NextTest struct {
	Test             string  `json:"test"`
	Description      string  `json:"description"`
	ExpectedInfoGain float64 `json:"expected_info_gain"`
}

// MLScores is the classifier's score breakdown: per-failure posteriors and
// their aggregation into vehicle systems.
type MLScores struct {
	Failures map[string]float64 `json:"failures"`
	Systems  map[string]float64 `json:"systems"`
}

// Result is a one-shot diagnosis.
type Result struct {
	Phase               Phase         `json:"phase"`
	Diagnosis           string        `json:"diagnosis"`
	Description         string        `json:"description"`
	Confidence          float64       `json:"confidence"`
	Alternatives        []Alternative `json:"alternatives,omitempty"`
	Evidence            []string      `json:"evidence,omitempty"`
	UnknownDTCs         []string      `json:"unknown_dtcs,omitempty"`
	RecommendedActions  []string      `json:"recommended_actions,omitempty"`
	DiscriminatingTests []string      `json:"discriminating_tests,omitempty"`
	RepairEstimate      string        `json:"repair_estimate,omitempty"`
	NextTest            *NextTest     `json:"next_test,omitempty"`
	MLScores            *MLScores     `json:"ml_scores,omitempty"`
	EntropyBits         float64       `json:"entropy_bits"`
}

// ToMap renders the result as a generic map, for callers that feed it into
// templating or JSON-ish pipelines without depending on the struct shape.
func (r *Result) ToMap() map[string]any {
	m := map[string]any{
		"phase":       string(r.Phase),
		"diagnosis":   r.Diagnosis,
		"description": r.Description,
		"confidence":  r.Confidence,
		"entropy":     r.EntropyBits,
	}
	if len(r.Evidence) > 0 {
		m["evidence"] = append([]string(nil), r.Evidence...)
	}
	if len(r.UnknownDTCs) > 0 {
		m["unknown_dtcs"] = append([]string(nil), r.UnknownDTCs...)
	}
	if len(r.RecommendedActions) > 0 {
		m["recommended_actions"] = append([]string(nil), r.RecommendedActions...)
	}
	if len(r.DiscriminatingTests) > 0 {
		m["discriminating_tests"] = append([]string(nil), r.DiscriminatingTests...)
	}
	if r.RepairEstimate != "" {
		m["repair_estimate"] = r.RepairEstimate
	}
	if len(r.Alternatives) > 0 {
		alts := make([]map[string]any, len(r.Alternatives))
		for i, a := range r.Alternatives {
			alts[i] = map[string]any{
				"failure":     a.Failure,
				"description": a.Description,
				"probability": a.Probability,
			}
		}
		m["alternatives"] = alts
	}
	if r.NextTest != nil {
		m["next_test"] = map[string]any{
			"test":               r.NextTest.Test,
			"description":        r.NextTest.Description,
			"expected_info_gain": r.NextTest.ExpectedInfoGain,
		}
	}
	if r.MLScores != nil {
		m["ml_scores"] = map[string]any{
			"failures": r.MLScores.Failures,
			"systems":  r.MLScores.Systems,
		}
	}
	return m
}

// ObservationRecord is one recorded session input.
type ObservationRecord struct {
	EvidenceType string    `json:"evidence_type"`
	Observed     bool      `json:"observed"`
	Notes        string    `json:"notes,omitempty"`
	At           time.Time `json:"at"`
}

// SessionSnapshot is the externally visible state of a session at a point in
// time, suitable for persistence and API responses.
type SessionSnapshot struct {
	ID              string              `json:"id"`
	Vehicle         VehicleInfo         `json:"vehicle"`
	InitialSymptoms []string            `json:"initial_symptoms,omitempty"`
	Observations    []ObservationRecord `json:"observations,omitempty"`
	TopHypotheses   []Alternative       `json:"top_hypotheses,omitempty"`
	Conclusion      *Conclusion         `json:"conclusion,omitempty"`
	Concluded       bool                `json:"concluded"`
	EntropyBits     float64             `json:"entropy_bits"`
	StartedAt       time.Time           `json:"started_at"`
}

// FailureInfo is one failure-mode catalog entry.
type FailureInfo struct {
	ID                  string   `json:"id"`
	System              string   `json:"system"`
	Description         string   `json:"description"`
	RepairActions       []string `json:"repair_actions,omitempty"`
	DiscriminatingTests []string `json:"discriminating_tests,omitempty"`
	CostEstimate        string   `json:"cost_estimate,omitempty"`
}

// Conclusion is the public form of a session's final verdict.
type Conclusion struct {
	Diagnosis          string        `json:"diagnosis"`
	Description        string        `json:"description"`
	Confidence         float64       `json:"confidence"`
	IsConclusive       bool          `json:"is_conclusive"`
	Forced             bool          `json:"forced,omitempty"`
	Alternatives       []Alternative `json:"alternatives,omitempty"`
	SupportingEvidence []string      `json:"supporting_evidence,omitempty"`
	RecommendedActions []string      `json:"recommended_actions"`
	Report             string        `json:"report"`
}
