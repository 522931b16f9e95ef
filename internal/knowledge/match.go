package knowledge

import "strings"

// NormalizeSensorName lowercases, trims, and underscores a sensor name, then
// folds known aliases onto the canonical name.
func NormalizeSensorName(name string) string {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	if canonical, ok := SensorAliases[n]; ok {
		return canonical
	}
	return n
}

// SensorToken converts one reading into at most one evidence token.
// The high threshold is checked before the low; the first crossing wins.
func (b *Base) SensorToken(name string, value float64) (string, bool) {
	rule, ok := b.Sensors[NormalizeSensorName(name)]
	if !ok {
		return "", false
	}
	if rule.High != nil && value >= rule.High.Value {
		return rule.High.Token, true
	}
	if rule.Low != nil && value <= rule.Low.Value {
		return rule.Low.Token, true
	}
	return "", false
}

// DTCToken converts a trouble code into at most one evidence token.
// Codes are matched uppercase; unrecognized codes are evidence-silent.
func (b *Base) DTCToken(code string) (string, bool) {
	info, ok := b.DTCs[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return "", false
	}
	return info.Token, true
}

// MatchSymptom converts free-text symptom description into at most one
// evidence token. Exact match is tried first, then bidirectional substring
// containment against the vocabulary (phrase-in-text or text-in-phrase).
func (b *Base) MatchSymptom(text string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return "", false
	}
	if token, ok := b.Symptoms[t]; ok {
		return token, true
	}
	for phrase, token := range b.Symptoms {
		if strings.Contains(t, phrase) || strings.Contains(phrase, t) {
			return token, true
		}
	}
	return "", false
}
