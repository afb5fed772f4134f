package testsupport

import (
	"path/filepath"
	"testing"

	"moviesphere/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.ModelsDir = filepath.Join(base, "models")
	cfg.Paths.FramesDir = filepath.Join(base, "frames")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithActorThreshold overrides the actor identity threshold.
func WithActorThreshold(value float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Analysis.ActorThreshold = value
	}
}

// WithWorkers overrides the analysis worker count.
func WithWorkers(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Analysis.Workers = n
	}
}
