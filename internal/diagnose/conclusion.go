package diagnose

import (
	"fmt"
	"strings"
	"time"

	"github.com/wrenchworks-ai/shindan/internal/belief"
)

// Conclusion is the final output of a session: the primary diagnosis, the
// alternatives still carrying mass, and the actions a technician should take.
type Conclusion struct {
	PrimaryDiagnosis   string              `json:"primary_diagnosis"`
	PrimaryDescription string              `json:"primary_description"`
	Confidence         float64             `json:"confidence"`
	Alternatives       []belief.Hypothesis `json:"alternatives,omitempty"`
	SupportingEvidence []string            `json:"supporting_evidence,omitempty"`
	RecommendedActions []string            `json:"recommended_actions"`
	IsConclusive       bool                `json:"is_conclusive"`
	Forced             bool                `json:"forced,omitempty"`
	ConcludedAt        time.Time           `json:"concluded_at"`
}

// String renders the conclusion as a fixed-format technician report.
func (c *Conclusion) String() string {
	var b strings.Builder

	b.WriteString("=== Diagnostic Conclusion ===\n")
	fmt.Fprintf(&b, "Diagnosis:  %s\n", c.PrimaryDescription)
	fmt.Fprintf(&b, "Confidence: %.1f%%", c.Confidence*100)
	switch {
	case c.IsConclusive:
		b.WriteString(" (conclusive)\n")
	case c.Forced:
		b.WriteString(" (forced, provisional)\n")
	default:
		b.WriteString(" (provisional)\n")
	}

	if len(c.SupportingEvidence) > 0 {
		b.WriteString("\nSupporting evidence:\n")
		for _, e := range c.SupportingEvidence {
			fmt.Fprintf(&b, "  - %s\n", humanize(e))
		}
	}

	if len(c.Alternatives) > 0 {
		b.WriteString("\nAlternatives considered:\n")
		for _, a := range c.Alternatives {
			fmt.Fprintf(&b, "  - %s (%.1f%%)\n", a.Failure, a.Probability*100)
		}
	}

	b.WriteString("\nRecommended actions:\n")
	for i, a := range c.RecommendedActions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, a)
	}
	return b.String()
}

func humanize(token string) string {
	return strings.ReplaceAll(token, "_", " ")
}
