package diagnose

import (
	"fmt"
	"math"
	"strings"
)

// maxEntropyBits anchors the certainty scale. The catalog has grown past 13
// failure modes, but the 13-hypothesis anchor is kept so certainty numbers
// stay comparable across recorded sessions; it only compresses the scale.
var maxEntropyBits = math.Log2(13)

const beliefBarWidth = 20

// ExplainReasoning renders the session's reasoning trail: vehicle, symptoms,
// every observation with its impact marker, the current top hypotheses as a
// bar chart, and an overall certainty figure derived from entropy.
func (d *Diagnostician) ExplainReasoning(s *Session) string {
	var b strings.Builder

	b.WriteString("=== Diagnostic Reasoning ===\n")
	if v := formatVehicle(s.Vehicle); v != "" {
		fmt.Fprintf(&b, "Vehicle: %s\n", v)
	}
	if len(s.InitialSymptoms) > 0 {
		fmt.Fprintf(&b, "Reported: %s\n", strings.Join(s.InitialSymptoms, "; "))
	}

	if len(s.Observations) > 0 {
		b.WriteString("\nEvidence trail:\n")
		for _, o := range s.Observations {
			marker := "[-]"
			if o.Observed {
				marker = "[+]"
			}
			if !d.kb.KnowsEvidence(o.EvidenceType) {
				marker = "[?]"
			}
			fmt.Fprintf(&b, "  %s %s", marker, humanize(o.EvidenceType))
			if o.Notes != "" {
				fmt.Fprintf(&b, " (%s)", o.Notes)
			}
			b.WriteByte('\n')
		}
	}

	current := s.Current()
	b.WriteString("\nCurrent beliefs:\n")
	for _, h := range current.TopHypotheses(5) {
		if h.Probability <= 0 {
			continue
		}
		fmt.Fprintf(&b, "  %-32s %s %5.1f%%\n",
			h.Failure, beliefBar(h.Probability), h.Probability*100)
	}

	entropy := current.Entropy()
	certainty := 1 - entropy/maxEntropyBits
	if certainty < 0 {
		certainty = 0
	}
	if certainty > 1 {
		certainty = 1
	}
	fmt.Fprintf(&b, "\nCertainty: %.0f%% (entropy %.2f bits)\n", certainty*100, entropy)

	if s.Concluded() {
		fmt.Fprintf(&b, "Concluded: %s (%.1f%%)\n",
			s.Conclusion.PrimaryDiagnosis, s.Conclusion.Confidence*100)
	} else if rec := d.RecommendTest(s); rec != nil {
		fmt.Fprintf(&b, "Suggested next test: %s (expected gain %.3f bits)\n",
			rec.Description, rec.ExpectedInfoGain)
	}
	return b.String()
}

func beliefBar(p float64) string {
	filled := int(p * beliefBarWidth)
	if filled > beliefBarWidth {
		filled = beliefBarWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", beliefBarWidth-filled)
}

func formatVehicle(v VehicleInfo) string {
	var parts []string
	if v.Year > 0 {
		parts = append(parts, fmt.Sprintf("%d", v.Year))
	}
	if v.Make != "" {
		parts = append(parts, v.Make)
	}
	if v.Model != "" {
		parts = append(parts, v.Model)
	}
	out := strings.Join(parts, " ")
	if v.VIN != "" {
		if out != "" {
			out += " "
		}
		out += "(VIN " + v.VIN + ")"
	}
	return out
}
