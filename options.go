package shindan

import "log/slog"

// Option configures an Engine.
type Option func(*resolvedOptions)

// resolvedOptions holds all extension points after applying defaults.
// Unexported — callers use the With* functions.
type resolvedOptions struct {
	logger              *slog.Logger
	overlayPath         string
	modelPath           string
	confidenceThreshold float64
}

// WithLogger sets the structured logger for the Engine.
// If not set, the default slog logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *resolvedOptions) { o.logger = logger }
}

// WithKnowledgeOverlay merges a YAML overlay file into the built-in knowledge
// base at construction time. Loading and validation errors fail New.
func WithKnowledgeOverlay(path string) Option {
	return func(o *resolvedOptions) { o.overlayPath = path }
}

// WithClassifierModel loads a trained Gaussian naive-Bayes model from a JSON
// file and uses it to seed diagnosis priors from sensor readings. Without a
// model the engine runs evidence-only.
func WithClassifierModel(path string) Option {
	return func(o *resolvedOptions) { o.modelPath = path }
}

// WithConfidenceThreshold overrides the probability at which a one-shot
// diagnosis is reported as confident. Values outside (0,1] fail New.
func WithConfidenceThreshold(threshold float64) Option {
	return func(o *resolvedOptions) { o.confidenceThreshold = threshold }
}
