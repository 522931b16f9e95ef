// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server settings.
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Session store settings. DatabasePath is a SQLite file path;
	// ":memory:" keeps sessions in-process only.
	DatabasePath     string
	SessionRetention time.Duration // Concluded sessions older than this are purged.

	// Engine settings.
	KnowledgeOverlayPath string  // YAML overlay merged into the built-in knowledge base.
	ClassifierModelPath  string  // JSON Gaussian naive-Bayes model; empty disables ML priors.
	ConfidenceThreshold  float64 // Probability at which a diagnosis is reported confident.

	// OTEL settings.
	OTELEndpoint string
	OTELInsecure bool
	ServiceName  string

	// Rate limiting.
	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int

	// Operational settings.
	LogLevel            string
	MaxRequestBodyBytes int64
	ShutdownTimeout     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:                 envInt("SHINDAN_PORT", 8080),
		ReadTimeout:          envDuration("SHINDAN_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:         envDuration("SHINDAN_WRITE_TIMEOUT", 30*time.Second),
		DatabasePath:         envStr("SHINDAN_DB_PATH", "shindan.db"),
		SessionRetention:     envDuration("SHINDAN_SESSION_RETENTION", 90*24*time.Hour),
		KnowledgeOverlayPath: envStr("SHINDAN_KNOWLEDGE_OVERLAY", ""),
		ClassifierModelPath:  envStr("SHINDAN_CLASSIFIER_MODEL", ""),
		ConfidenceThreshold:  envFloat("SHINDAN_CONFIDENCE_THRESHOLD", 0.7),
		OTELEndpoint:         envStr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELInsecure:         envBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		ServiceName:          envStr("OTEL_SERVICE_NAME", "shindan"),
		RateLimitEnabled:     envBool("SHINDAN_RATE_LIMIT_ENABLED", true),
		RateLimitRPS:         envFloat("SHINDAN_RATE_LIMIT_RPS", 25),
		RateLimitBurst:       envInt("SHINDAN_RATE_LIMIT_BURST", 50),
		LogLevel:             envStr("SHINDAN_LOG_LEVEL", "info"),
		MaxRequestBodyBytes:  int64(envInt("SHINDAN_MAX_REQUEST_BODY_BYTES", 1*1024*1024)), // 1 MB default
		ShutdownTimeout:      envDuration("SHINDAN_SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present and in range.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: SHINDAN_PORT %d out of range", c.Port)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("config: SHINDAN_DB_PATH is required")
	}
	if c.ConfidenceThreshold <= 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("config: SHINDAN_CONFIDENCE_THRESHOLD must be in (0,1]")
	}
	if c.MaxRequestBodyBytes <= 0 {
		return fmt.Errorf("config: SHINDAN_MAX_REQUEST_BODY_BYTES must be positive")
	}
	if c.RateLimitEnabled && (c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0) {
		return fmt.Errorf("config: rate limit RPS and burst must be positive when enabled")
	}
	return nil
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
