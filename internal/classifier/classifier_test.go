package classifier

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel() Model {
	return Model{
		Features: []string{"coolant_temp", "rpm"},
		Classes: []ClassModel{
			{Name: "normal", Prior: 0.7, Mean: []float64{92, 750}, Variance: []float64{16, 2500}},
			{Name: "overheat", Prior: 0.2, Mean: []float64{115, 760}, Variance: []float64{25, 2500}},
			{Name: "cold_run", Prior: 0.1, Mean: []float64{65, 780}, Variance: []float64{25, 2500}},
		},
	}
}

func TestLoadModelFromFile(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "model.json"), nil)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"normal", "thermostat_stuck_open", "thermostat_stuck_closed", "vacuum_leak"},
		c.Classes())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.json"), nil)
	assert.Error(t, err)
}

func TestValidateRejectsMisalignedParameters(t *testing.T) {
	m := testModel()
	m.Classes[1].Mean = m.Classes[1].Mean[:1]
	_, err := New(m, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overheat")
}

func TestValidateRejectsDuplicateClass(t *testing.T) {
	m := testModel()
	m.Classes[2].Name = "normal"
	_, err := New(m, nil)
	assert.Error(t, err)
}

func TestScoresSumToOne(t *testing.T) {
	c, err := New(testModel(), nil)
	require.NoError(t, err)

	scores := c.Scores(map[string]float64{"coolant_temp": 92, "rpm": 750})
	var total float64
	for _, p := range scores {
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestPredictTopFollowsEvidence(t *testing.T) {
	c, err := New(testModel(), nil)
	require.NoError(t, err)

	hot := c.PredictTop(map[string]float64{"coolant_temp": 117, "rpm": 750})
	assert.Equal(t, "overheat", hot.Class)

	cold := c.PredictTop(map[string]float64{"coolant_temp": 63, "rpm": 800})
	assert.Equal(t, "cold_run", cold.Class)

	healthy := c.PredictTop(map[string]float64{"coolant_temp": 92, "rpm": 750})
	assert.Equal(t, "normal", healthy.Class)
	assert.Greater(t, healthy.Probability, 0.5)
}

func TestMissingFeatureUsesDefault(t *testing.T) {
	c, err := New(testModel(), map[string]float64{"rpm": 750})
	require.NoError(t, err)

	// Only coolant_temp supplied; rpm comes from the default and should not
	// change the ranking driven by temperature.
	hot := c.PredictTop(map[string]float64{"coolant_temp": 117})
	assert.Equal(t, "overheat", hot.Class)
}

func TestMissingFeatureWithoutDefaultIsUninformative(t *testing.T) {
	c, err := New(testModel(), nil)
	require.NoError(t, err)

	// No features at all: every class scores its own mean on every feature,
	// so the result tracks the class priors.
	top := c.PredictTop(nil)
	assert.Equal(t, "normal", top.Class)
}

func TestPriorDistributionMatchesScores(t *testing.T) {
	c, err := New(testModel(), nil)
	require.NoError(t, err)

	features := map[string]float64{"coolant_temp": 110, "rpm": 750}
	assert.Equal(t, c.Scores(features), c.PriorDistribution(features))
}

func TestAggregateBySystem(t *testing.T) {
	scores := map[string]float64{"a": 0.5, "b": 0.3, "c": 0.2}
	agg := AggregateBySystem(scores, func(class string) string {
		if class == "c" {
			return ""
		}
		return "cooling"
	})
	assert.InDelta(t, 0.8, agg["cooling"], 1e-9)
	assert.InDelta(t, 0.2, agg["other"], 1e-9)
}
