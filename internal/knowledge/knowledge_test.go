package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogConsistency(t *testing.T) {
	b := Default()

	seen := make(map[string]bool)
	for _, f := range b.Failures {
		assert.False(t, seen[f.ID], "duplicate failure ID %s", f.ID)
		seen[f.ID] = true
		assert.NotEmpty(t, f.Description, "failure %s has no description", f.ID)
		assert.NotEmpty(t, f.System, "failure %s has no system", f.ID)
	}
	assert.True(t, seen[FailureNormal], "catalog must include the normal hypothesis")
	assert.True(t, seen[FailureHVIsolation])
	assert.GreaterOrEqual(t, len(b.Failures), 50)
}

func TestLikelihoodValuesInRange(t *testing.T) {
	b := Default()
	for token, row := range b.Likelihood {
		require.NotEmpty(t, row, "empty likelihood row for %s", token)
		for failure, p := range row {
			assert.Greater(t, p, 0.0, "%s/%s", token, failure)
			assert.Less(t, p, 1.0, "%s/%s", token, failure)
		}
	}
}

func TestLikelihoodFailuresExistInCatalog(t *testing.T) {
	b := Default()
	for token, row := range b.Likelihood {
		for failure := range row {
			_, ok := b.Lookup(failure)
			assert.True(t, ok, "likelihood row %s references unknown failure %s", token, failure)
		}
	}
}

func TestDTCTokensHaveLikelihoodRows(t *testing.T) {
	b := Default()
	for code, info := range b.DTCs {
		assert.True(t, b.KnowsEvidence(info.Token),
			"DTC %s maps to token %s with no likelihood row", code, info.Token)
	}
}

func TestSymptomTokensHaveLikelihoodRows(t *testing.T) {
	b := Default()
	for phrase, token := range b.Symptoms {
		assert.True(t, b.KnowsEvidence(token),
			"symptom %q maps to token %s with no likelihood row", phrase, token)
	}
}

func TestSensorTokensHaveLikelihoodRows(t *testing.T) {
	b := Default()
	for name, rule := range b.Sensors {
		if rule.High != nil {
			assert.True(t, b.KnowsEvidence(rule.High.Token), "sensor %s high token %s", name, rule.High.Token)
		}
		if rule.Low != nil {
			assert.True(t, b.KnowsEvidence(rule.Low.Token), "sensor %s low token %s", name, rule.Low.Token)
		}
	}
	assert.True(t, b.KnowsEvidence(TokenHighTotalFuelTrim))
	assert.True(t, b.KnowsEvidence(TokenModerateTotalFuelTrim))
}

func TestNormalSuppressedUnderAbnormalEvidence(t *testing.T) {
	b := Default()
	for token, row := range b.Likelihood {
		if p, ok := row[FailureNormal]; ok {
			assert.LessOrEqual(t, p, 0.1, "normal likelihood for %s should be weak", token)
		}
	}
}

func TestDTCPattern(t *testing.T) {
	assert.True(t, DTCPattern.MatchString("P0128"))
	assert.True(t, DTCPattern.MatchString("C0035"))
	assert.True(t, DTCPattern.MatchString("U0100"))
	assert.False(t, DTCPattern.MatchString("BMS_F035"))
	assert.False(t, DTCPattern.MatchString("p0128"))
	assert.False(t, DTCPattern.MatchString("P012"))
}

func TestRepairActionsFallback(t *testing.T) {
	b := Default()
	actions := b.RepairActions("not_a_real_failure")
	require.Len(t, actions, 1)
	assert.Contains(t, actions[0], "Further diagnosis required")
}

func TestOverlayMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	overlayYAML := `
likelihood:
  coolant_temp_high:
    thermostat_stuck_closed: 0.95
  fleet_specific_token:
    water_pump_failure: 0.8
symptoms:
  "making a weird noise": whining_noise_acceleration
dtcs:
  P1XYZ:
    token: dtc_P0217
    system: cooling
    description: Manufacturer overheat code
failures:
  - id: aux_coolant_pump_failure
    system: cooling
    description: Auxiliary coolant pump failed
    repair_actions: ["Replace auxiliary pump"]
    cost_estimate: "$200-$400"
`
	require.NoError(t, os.WriteFile(path, []byte(overlayYAML), 0o600))

	o, err := LoadOverlay(path)
	require.NoError(t, err)

	b := Default()
	before := len(b.Failures)
	b.Merge(o)

	assert.Equal(t, 0.95, b.Likelihood["coolant_temp_high"]["thermostat_stuck_closed"])
	// Untouched entries in a merged row survive.
	assert.Equal(t, 0.80, b.Likelihood["coolant_temp_high"]["water_pump_failure"])
	assert.Equal(t, 0.8, b.Likelihood["fleet_specific_token"]["water_pump_failure"])
	assert.Equal(t, "whining_noise_acceleration", b.Symptoms["making a weird noise"])
	assert.Equal(t, "dtc_P0217", b.DTCs["P1XYZ"].Token)
	assert.Equal(t, before+1, len(b.Failures))
	f, ok := b.Lookup("aux_coolant_pump_failure")
	require.True(t, ok)
	assert.Equal(t, "Auxiliary coolant pump failed", f.Description)
}

func TestOverlayRejectsOutOfRangeLikelihood(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("likelihood:\n  x:\n    y: 1.5\n"), 0o600))
	_, err := LoadOverlay(path)
	assert.Error(t, err)
}
