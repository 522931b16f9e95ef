package shindan

import "time"

// Phase describes how far a diagnosis has progressed.
type Phase string

const (
	PhaseInitial       Phase = "initial"
	PhaseInvestigating Phase = "investigating"
	PhaseConfident     Phase = "confident"
)

// SensorReading is a single named sensor value.
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

// DiagnoseRequest is the input to a one-shot diagnosis.
type DiagnoseRequest struct {
	Vehicle  VehicleInfo     `json:"vehicle,omitempty"`
	Sensors  []SensorReading `json:"sensors,omitempty"`
	DTCs     []string        `json:"dtcs,omitempty"`
	Symptoms []string        `json:"symptoms,omitempty"`
}

// Alternative is a competing hypothesis with its posterior probability.
type Alternative struct {
	Failure     string  `json:"failure"`
	Description string  `json:"description"`
	Probability float64 `json:"probability"`
}

// NextTest is the test the engine recommends performing next.
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

// DiagnoseResult is the outcome of a one-shot diagnosis.
type DiagnoseResult struct {
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

// ObservationRecord is one evidence entry in a session's log.
type ObservationRecord struct {
	EvidenceType string    `json:"evidence_type"`
	Observed     bool      `json:"observed"`
	Notes        string    `json:"notes,omitempty"`
	At           time.Time `json:"at"`
}

// SessionSnapshot is the full state of a diagnostic session.
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

// Conclusion is the final verdict of a session.
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

// FailureInfo describes one entry of the failure catalog.
type FailureInfo struct {
	ID                  string   `json:"id"`
	System              string   `json:"system"`
	Description         string   `json:"description"`
	RepairActions       []string `json:"repair_actions,omitempty"`
	DiscriminatingTests []string `json:"discriminating_tests,omitempty"`
	CostEstimate        string   `json:"cost_estimate,omitempty"`
}

// StartSessionRequest is the body for creating a session.
type StartSessionRequest struct {
	Vehicle  VehicleInfo     `json:"vehicle"`
	Symptoms []string        `json:"symptoms,omitempty"`
	Sensors  []SensorReading `json:"sensors,omitempty"`
}

// ObserveRequest records one piece of evidence against a session.
// Exactly one of EvidenceType, DTC, or Symptom must be set. Observed
// defaults to true server-side and only applies to EvidenceType
// observations.
type ObserveRequest struct {
	EvidenceType string `json:"evidence_type,omitempty"`
	Observed     *bool  `json:"observed,omitempty"`
	Notes        string `json:"notes,omitempty"`
	DTC          string `json:"dtc,omitempty"`
	Symptom      string `json:"symptom,omitempty"`
}

// SessionResponse pairs a session snapshot with the currently recommended
// next test, as returned by the session mutation endpoints.
type SessionResponse struct {
	Session        SessionSnapshot `json:"session"`
	Recommendation *NextTest       `json:"recommendation,omitempty"`
}

// SessionSummary is the list-view projection of a stored session.
type SessionSummary struct {
	ID         string      `json:"id"`
	Vehicle    VehicleInfo `json:"vehicle"`
	Diagnosis  string      `json:"diagnosis,omitempty"`
	Confidence float64     `json:"confidence"`
	Concluded  bool        `json:"concluded"`
	StartedAt  string      `json:"started_at"`
}

// Health is the server's health report.
type Health struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Storage       string `json:"storage"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
