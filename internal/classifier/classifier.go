// Package classifier scores sensor feature vectors against a Gaussian
// naive-Bayes model trained offline. Its output seeds the belief prior; it
// never replaces evidence-driven reasoning on its own.
package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// varianceFloor guards against degenerate trained variances. A feature whose
// variance collapses to zero would otherwise dominate every score.
const varianceFloor = 1e-6

// Model is the serialized classifier: per-class feature Gaussians plus class
// priors. Mean and Variance are aligned with Features by index.
type Model struct {
	Version  string       `json:"version,omitempty"`
	Features []string     `json:"features"`
	Classes  []ClassModel `json:"classes"`
}

// ClassModel is one trained class.
type ClassModel struct {
	Name     string    `json:"name"`
	Prior    float64   `json:"prior"`
	Mean     []float64 `json:"mean"`
	Variance []float64 `json:"variance"`
}

// Validate checks structural consistency of a loaded model.
func (m *Model) Validate() error {
	if len(m.Features) == 0 {
		return fmt.Errorf("classifier: model has no features")
	}
	if len(m.Classes) == 0 {
		return fmt.Errorf("classifier: model has no classes")
	}
	seen := make(map[string]struct{}, len(m.Classes))
	for _, c := range m.Classes {
		if c.Name == "" {
			return fmt.Errorf("classifier: class with empty name")
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("classifier: duplicate class %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if len(c.Mean) != len(m.Features) || len(c.Variance) != len(m.Features) {
			return fmt.Errorf("classifier: class %q has %d/%d parameters for %d features",
				c.Name, len(c.Mean), len(c.Variance), len(m.Features))
		}
		if c.Prior < 0 {
			return fmt.Errorf("classifier: class %q has negative prior", c.Name)
		}
	}
	return nil
}

// Prediction is one scored classification.
type Prediction struct {
	Class       string             `json:"class"`
	Probability float64            `json:"probability"`
	Scores      map[string]float64 `json:"scores"`
}

// Classifier scores feature vectors against a model. Safe for concurrent use
// after construction.
type Classifier struct {
	model    Model
	defaults map[string]float64
}

// New builds a classifier from a validated model. defaults supplies values
// for features missing from an input vector (typically healthy-idle
// baselines); features absent from both fall back to the class mean, which
// makes them uninformative for that class.
func New(model Model, defaults map[string]float64) (*Classifier, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	d := make(map[string]float64, len(defaults))
	for k, v := range defaults {
		d[k] = v
	}
	return &Classifier{model: model, defaults: d}, nil
}

// Load reads a model from a JSON file.
func Load(path string, defaults map[string]float64) (*Classifier, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("classifier: read model: %w", err)
	}
	var m Model
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("classifier: parse model: %w", err)
	}
	return New(m, defaults)
}

// Classes returns the model's class names in model order.
func (c *Classifier) Classes() []string {
	out := make([]string, len(c.model.Classes))
	for i, cls := range c.model.Classes {
		out[i] = cls.Name
	}
	return out
}

// Scores returns the normalized posterior over all classes for the given
// feature vector.
func (c *Classifier) Scores(features map[string]float64) map[string]float64 {
	logs := make([]float64, len(c.model.Classes))
	maxLog := math.Inf(-1)

	for i, cls := range c.model.Classes {
		lp := math.Log(math.Max(cls.Prior, 1e-12))
		for j, name := range c.model.Features {
			x, ok := features[name]
			if !ok {
				x, ok = c.defaults[name]
			}
			if !ok {
				x = cls.Mean[j]
			}
			variance := math.Max(cls.Variance[j], varianceFloor)
			diff := x - cls.Mean[j]
			lp += -0.5*math.Log(2*math.Pi*variance) - diff*diff/(2*variance)
		}
		logs[i] = lp
		if lp > maxLog {
			maxLog = lp
		}
	}

	// Log-sum-exp normalization.
	var total float64
	for _, lp := range logs {
		total += math.Exp(lp - maxLog)
	}
	out := make(map[string]float64, len(logs))
	for i, cls := range c.model.Classes {
		out[cls.Name] = math.Exp(logs[i]-maxLog) / total
	}
	return out
}

// PredictTop returns the highest-scoring class. Ties break by model order.
func (c *Classifier) PredictTop(features map[string]float64) Prediction {
	scores := c.Scores(features)
	best := Prediction{Scores: scores, Probability: -1}
	for _, cls := range c.model.Classes {
		if scores[cls.Name] > best.Probability {
			best.Class = cls.Name
			best.Probability = scores[cls.Name]
		}
	}
	return best
}

// PriorDistribution returns the posterior as a prior map suitable for seeding
// a belief state. It is the same distribution Scores returns; the separate
// name keeps call sites honest about intent.
func (c *Classifier) PriorDistribution(features map[string]float64) map[string]float64 {
	return c.Scores(features)
}

// AggregateBySystem folds class scores into per-system totals using the
// supplied class-to-system mapping. Classes mapping to "" are grouped under
// "other". Results iterate deterministically via SortedKeys.
func AggregateBySystem(scores map[string]float64, systemOf func(class string) string) map[string]float64 {
	out := make(map[string]float64)
	for class, p := range scores {
		system := systemOf(class)
		if system == "" {
			system = "other"
		}
		out[system] += p
	}
	return out
}

// SortedKeys returns map keys sorted ascending, for deterministic rendering.
func SortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
