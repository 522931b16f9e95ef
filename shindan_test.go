package shindan

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	eng, err := New(opts...)
	require.NoError(t, err)
	return eng
}

func TestNewRejectsBadThreshold(t *testing.T) {
	_, err := New(WithConfidenceThreshold(1.5))
	assert.Error(t, err)
	_, err = New(WithConfidenceThreshold(0))
	assert.Error(t, err)
}

func TestDiagnoseEmptyInputIsInitial(t *testing.T) {
	eng := newTestEngine(t)
	res := eng.Diagnose(Input{})

	assert.Equal(t, PhaseInitial, res.Phase)
	assert.Empty(t, res.Evidence)
	assert.Less(t, res.Confidence, 0.1)
}

func TestDiagnoseVacuumLeak(t *testing.T) {
	eng := newTestEngine(t)
	res := eng.Diagnose(Input{
		Sensors: []SensorReading{
			{Name: "stft", Value: 15},
			{Name: "ltft", Value: 12},
		},
		DTCs:     []string{"P0171"},
		Symptoms: []string{"rough idle"},
	})

	assert.Equal(t, "vacuum_leak", res.Diagnosis)
	assert.GreaterOrEqual(t, res.Confidence, 0.6)
	assert.Equal(t, PhaseConfident, res.Phase)
	assert.Contains(t, res.Evidence, "high_total_fuel_trim")
	assert.Contains(t, res.Evidence, "system_lean_bank1")
	assert.Contains(t, res.Evidence, "rough_idle")
	assert.NotEmpty(t, res.RecommendedActions)
}

func TestDiagnoseModerateFuelTrim(t *testing.T) {
	eng := newTestEngine(t)
	res := eng.Diagnose(Input{
		Sensors: []SensorReading{
			{Name: "short_term_fuel_trim", Value: 10},
			{Name: "long_term_fuel_trim", Value: -9},
		},
	})
	assert.Contains(t, res.Evidence, "moderate_total_fuel_trim")
	assert.NotContains(t, res.Evidence, "high_total_fuel_trim")
}

func TestDiagnoseSensorAliasNormalization(t *testing.T) {
	eng := newTestEngine(t)
	res := eng.Diagnose(Input{
		Sensors: []SensorReading{{Name: "ECT", Value: 118}},
	})
	assert.Contains(t, res.Evidence, "coolant_temp_high")
}

func TestDiagnoseUnknownDTCDegradesGracefully(t *testing.T) {
	eng := newTestEngine(t)
	res := eng.Diagnose(Input{DTCs: []string{"Z9999", "P0171"}})

	assert.Contains(t, res.UnknownDTCs, "Z9999")
	assert.Contains(t, res.Evidence, "system_lean_bank1")
	assert.NotEqual(t, PhaseInitial, res.Phase)
}

func TestDiagnoseDeduplicatesEvidence(t *testing.T) {
	eng := newTestEngine(t)
	res := eng.Diagnose(Input{DTCs: []string{"P0171", "P0171"}})

	count := 0
	for _, e := range res.Evidence {
		if e == "system_lean_bank1" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDiagnoseIsolationSafetyOverride(t *testing.T) {
	eng := newTestEngine(t)
	res := eng.Diagnose(Input{
		Sensors: []SensorReading{{Name: "isolation_resistance", Value: 0.2}},
		DTCs:    []string{"BMS_F035"},
	})

	assert.Equal(t, "tesla_hv_isolation_fault", res.Diagnosis)
	assert.InDelta(t, 0.995, res.Confidence, 1e-6)
	assert.Equal(t, PhaseConfident, res.Phase)
}

func TestDiagnoseInvestigatingSuggestsNextTest(t *testing.T) {
	eng := newTestEngine(t)
	res := eng.Diagnose(Input{Symptoms: []string{"engine overheating"}})

	assert.Equal(t, PhaseInvestigating, res.Phase)
	require.NotNil(t, res.NextTest)
	assert.Greater(t, res.NextTest.ExpectedInfoGain, 0.0)
}

func TestDiagnoseClassifierOnlyOverride(t *testing.T) {
	eng := newTestEngine(t, WithClassifierModel(filepath.Join("testdata", "model.json")))

	// 72C crosses no sensor threshold, so the classifier is the only signal.
	res := eng.Diagnose(Input{
		Sensors: []SensorReading{{Name: "coolant_temp", Value: 72}},
	})

	assert.Empty(t, res.Evidence)
	assert.Equal(t, "thermostat_stuck_open", res.Diagnosis)
	assert.Equal(t, PhaseConfident, res.Phase)
	require.NotNil(t, res.MLScores)
	assert.NotEmpty(t, res.MLScores.Failures)
}

func TestDiagnoseClassifierSeedsButEvidenceWins(t *testing.T) {
	eng := newTestEngine(t, WithClassifierModel(filepath.Join("testdata", "model.json")))

	// Strong lean-condition evidence plus a classifier that agrees.
	res := eng.Diagnose(Input{
		Sensors: []SensorReading{
			{Name: "coolant_temp", Value: 91},
			{Name: "stft", Value: 14},
			{Name: "ltft", Value: 13},
		},
		DTCs: []string{"P0171"},
	})
	assert.Equal(t, "vacuum_leak", res.Diagnosis)
	assert.Equal(t, PhaseConfident, res.Phase)
	require.NotNil(t, res.MLScores)
	assert.NotEmpty(t, res.MLScores.Failures)
}

func TestKnowledgeOverlayExtendsCatalog(t *testing.T) {
	eng := newTestEngine(t, WithKnowledgeOverlay(filepath.Join("testdata", "overlay.yaml")))

	res := eng.Diagnose(Input{Symptoms: []string{"trailer lights flicker"}})
	assert.Equal(t, "trailer_wiring_short", res.Diagnosis)
	assert.Contains(t, res.Evidence, "trailer_lights_flicker")

	// Overlay DTC resolves to the same token.
	res = eng.Diagnose(Input{DTCs: []string{"B2425"}})
	assert.Empty(t, res.UnknownDTCs)
	assert.Contains(t, res.Evidence, "trailer_lights_flicker")
}

func TestSessionLifecycle(t *testing.T) {
	eng := newTestEngine(t)
	s := eng.StartSession(VehicleInfo{Make: "Subaru", Model: "Outback", Year: 2019},
		[]string{"engine running cold", "no heat from heater"}, nil)

	require.False(t, s.Concluded())
	assert.NotEmpty(t, s.ID())

	c := eng.Conclude(s)
	require.NotNil(t, c)
	assert.Equal(t, "thermostat_stuck_open", c.Diagnosis)
	assert.Greater(t, c.Confidence, 0.3)
	assert.True(t, c.Forced)
	assert.Contains(t, c.Report, "=== Diagnostic Conclusion ===")
}

func TestSessionObservationsDriveConclusion(t *testing.T) {
	eng := newTestEngine(t)
	s := eng.StartSession(VehicleInfo{},
		nil, []SensorReading{{Name: "coolant_temp", Value: 118}})

	rec := eng.RecommendTest(s)
	require.NotNil(t, rec)

	eng.Observe(s, "fan_not_running_when_hot", true, "visual check")
	eng.ObserveDTC(s, "P0480")

	require.True(t, s.Concluded())
	c := eng.Conclude(s)
	assert.Equal(t, "cooling_fan_not_operating", c.Diagnosis)
	assert.False(t, c.Forced)
	assert.Nil(t, eng.RecommendTest(s))
}

func TestSessionObserveUnknownInputs(t *testing.T) {
	eng := newTestEngine(t)
	s := eng.StartSession(VehicleInfo{}, nil, nil)

	assert.False(t, eng.ObserveDTC(s, "NOPE42"))
	assert.False(t, eng.ObserveSymptom(s, "gremlins in the dashboard"))
	assert.True(t, eng.ObserveSymptom(s, "rough idle"))
}

func TestSessionRuleOut(t *testing.T) {
	eng := newTestEngine(t)
	s := eng.StartSession(VehicleInfo{}, []string{"rough idle"}, nil)
	eng.RuleOut(s, "vacuum_leak")

	eng.Observe(s, "smoke_test_reveals_leak", true, "")
	c := eng.Conclude(s)
	assert.NotEqual(t, "vacuum_leak", c.Diagnosis)
}

func TestSessionExplain(t *testing.T) {
	eng := newTestEngine(t)
	s := eng.StartSession(VehicleInfo{Make: "Mazda", Model: "3"},
		[]string{"rough idle"}, nil)

	out := eng.Explain(s)
	assert.Contains(t, out, "=== Diagnostic Reasoning ===")
	assert.Contains(t, out, "Mazda 3")
	assert.Contains(t, out, "rough idle")
}

func TestResultToMap(t *testing.T) {
	eng := newTestEngine(t)
	res := eng.Diagnose(Input{Symptoms: []string{"engine overheating"}})

	m := res.ToMap()
	assert.Equal(t, string(PhaseInvestigating), m["phase"])
	assert.Equal(t, res.Diagnosis, m["diagnosis"])
	assert.Equal(t, res.Confidence, m["confidence"])
	if res.NextTest != nil {
		next, ok := m["next_test"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, res.NextTest.Test, next["test"])
	}
}

func TestDiagnosePackagesCatalogFields(t *testing.T) {
	eng := newTestEngine(t)
	res := eng.Diagnose(Input{
		Sensors: []SensorReading{
			{Name: "stft", Value: 15},
			{Name: "ltft", Value: 12},
		},
		DTCs: []string{"P0171"},
	})

	require.Equal(t, "vacuum_leak", res.Diagnosis)
	assert.Contains(t, res.DiscriminatingTests, "Smoke test of intake system")
	assert.Equal(t, "$100-$400", res.RepairEstimate)

	m := res.ToMap()
	assert.Equal(t, res.RepairEstimate, m["repair_estimate"])
	tests, ok := m["discriminating_tests"].([]string)
	require.True(t, ok)
	assert.Equal(t, res.DiscriminatingTests, tests)
}

func TestDiagnoseMLScoresAggregateBySystem(t *testing.T) {
	eng := newTestEngine(t, WithClassifierModel(filepath.Join("testdata", "model.json")))

	res := eng.Diagnose(Input{
		Sensors: []SensorReading{{Name: "coolant_temp", Value: 72}},
	})

	require.NotNil(t, res.MLScores)
	require.NotEmpty(t, res.MLScores.Systems)

	// Both thermostat classes live in the cooling system, so the aggregate
	// must carry at least the top class's share.
	cooling := res.MLScores.Systems["cooling"]
	assert.GreaterOrEqual(t, cooling, res.MLScores.Failures["thermostat_stuck_open"])

	var total float64
	for _, p := range res.MLScores.Systems {
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	m := res.ToMap()
	scores, ok := m["ml_scores"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, res.MLScores.Systems, scores["systems"])
}
