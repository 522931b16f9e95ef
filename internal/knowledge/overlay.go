package knowledge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overlay is a fleet- or shop-specific extension to the built-in knowledge
// base, loaded from YAML. Overlay rows merge over built-in rows: likelihood
// entries replace individual failure probabilities, symptoms and DTCs add or
// replace whole entries, and failures append to the catalog.
type Overlay struct {
	Likelihood map[string]map[string]float64 `yaml:"likelihood"`
	Symptoms   map[string]string             `yaml:"symptoms"`
	DTCs       map[string]OverlayDTC         `yaml:"dtcs"`
	Failures   []OverlayFailure              `yaml:"failures"`
}

// OverlayDTC is a DTC table entry in overlay form.
type OverlayDTC struct {
	Token       string `yaml:"token"`
	System      string `yaml:"system"`
	Description string `yaml:"description"`
}

// OverlayFailure is a failure catalog entry in overlay form.
type OverlayFailure struct {
	ID                  string   `yaml:"id"`
	System              string   `yaml:"system"`
	Description         string   `yaml:"description"`
	RepairActions       []string `yaml:"repair_actions"`
	DiscriminatingTests []string `yaml:"discriminating_tests"`
	CostEstimate        string   `yaml:"cost_estimate"`
}

// LoadOverlay parses an overlay YAML file.
func LoadOverlay(path string) (*Overlay, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("knowledge: read overlay: %w", err)
	}
	var o Overlay
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("knowledge: parse overlay: %w", err)
	}
	for token, row := range o.Likelihood {
		for failure, p := range row {
			if p <= 0 || p >= 1 {
				return nil, fmt.Errorf("knowledge: overlay likelihood %s/%s = %v out of (0,1)", token, failure, p)
			}
		}
	}
	return &o, nil
}

// Merge applies an overlay to the base. New failures append in overlay order
// so they keep a stable position in the belief distribution.
func (b *Base) Merge(o *Overlay) {
	for _, f := range o.Failures {
		if _, exists := b.byID[f.ID]; exists {
			continue
		}
		b.Failures = append(b.Failures, Failure{
			ID:                  f.ID,
			System:              f.System,
			Description:         f.Description,
			RepairActions:       f.RepairActions,
			DiscriminatingTests: f.DiscriminatingTests,
			CostEstimate:        f.CostEstimate,
		})
	}
	b.index()

	for token, row := range o.Likelihood {
		dst, ok := b.Likelihood[token]
		if !ok {
			dst = make(map[string]float64, len(row))
			b.Likelihood[token] = dst
		}
		for failure, p := range row {
			dst[failure] = p
		}
	}
	for phrase, token := range o.Symptoms {
		b.Symptoms[phrase] = token
	}
	for code, info := range o.DTCs {
		b.DTCs[code] = DTCInfo{Token: info.Token, System: info.System, Description: info.Description}
	}
}
