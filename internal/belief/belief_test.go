package belief

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizes(t *testing.T) {
	s := New([]string{"a", "b", "c"}, map[string]float64{"a": 2, "b": 3, "c": 5})
	var total float64
	for _, p := range s.Probabilities {
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.InDelta(t, 0.2, s.Probabilities["a"], 1e-9)
	assert.InDelta(t, 0.5, s.Probabilities["c"], 1e-9)
}

func TestNormalizeZeroMassIsNoop(t *testing.T) {
	s := New([]string{"a", "b"}, map[string]float64{})
	// All-zero input stays all-zero; no division by zero.
	assert.Equal(t, 0.0, s.Probabilities["a"])
	assert.Equal(t, 0.0, s.Probabilities["b"])
	s.Normalize()
	assert.Equal(t, 0.0, s.Probabilities["a"])
}

func TestUniform(t *testing.T) {
	s := Uniform([]string{"a", "b", "c", "d"})
	for _, id := range []string{"a", "b", "c", "d"} {
		assert.InDelta(t, 0.25, s.Probabilities[id], 1e-9)
	}
}

func TestTopHypothesesStableTieBreak(t *testing.T) {
	s := New([]string{"x", "y", "z"}, map[string]float64{"x": 1, "y": 2, "z": 1})
	top := s.TopHypotheses(3)
	require.Len(t, top, 3)
	assert.Equal(t, "y", top[0].Failure)
	// x and z tie; insertion order wins.
	assert.Equal(t, "x", top[1].Failure)
	assert.Equal(t, "z", top[2].Failure)
}

func TestTopHypothesesClampsN(t *testing.T) {
	s := Uniform([]string{"a", "b"})
	assert.Len(t, s.TopHypotheses(10), 2)
	assert.Len(t, s.TopHypotheses(-1), 0)
}

func TestEntropyBounds(t *testing.T) {
	oneHot := New([]string{"a", "b", "c"}, map[string]float64{"a": 1})
	assert.InDelta(t, 0.0, oneHot.Entropy(), 1e-9)

	n := 16
	ids := make([]string, n)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}
	uniform := Uniform(ids)
	assert.InDelta(t, math.Log2(float64(n)), uniform.Entropy(), 1e-9)
}

func TestIsConfident(t *testing.T) {
	s := New([]string{"a", "b"}, map[string]float64{"a": 8, "b": 2})
	assert.True(t, s.IsConfident(0.7))
	assert.False(t, s.IsConfident(0.9))

	empty := New(nil, nil)
	assert.False(t, empty.IsConfident(0.0001))
}

func TestCopyIsolation(t *testing.T) {
	s := New([]string{"a", "b"}, map[string]float64{"a": 1, "b": 1})
	s.Evidence = append(s.Evidence, EvidenceEntry{Type: "e1", Observed: true})
	s.RuledOut["b"] = struct{}{}

	c := s.Copy()
	c.Probabilities["a"] = 0.99
	c.Evidence = append(c.Evidence, EvidenceEntry{Type: "e2"})
	c.RuledOut["a"] = struct{}{}

	assert.InDelta(t, 0.5, s.Probabilities["a"], 1e-9)
	assert.Len(t, s.Evidence, 1)
	_, ruled := s.RuledOut["a"]
	assert.False(t, ruled)
}

func TestObserved(t *testing.T) {
	s := Uniform([]string{"a"})
	assert.False(t, s.Observed("e1"))
	s.Evidence = append(s.Evidence, EvidenceEntry{Type: "e1", Observed: false})
	assert.True(t, s.Observed("e1"))
}

func TestMaxHypothesis(t *testing.T) {
	s := New([]string{"a", "b"}, map[string]float64{"a": 1, "b": 3})
	h, ok := s.MaxHypothesis()
	require.True(t, ok)
	assert.Equal(t, "b", h.Failure)

	_, ok = New(nil, nil).MaxHypothesis()
	assert.False(t, ok)
}
