// Package testsupport provides helpers shared by package tests: temp-backed
// configurations, fixture files, and line database stores.
package testsupport

import (
	"path/filepath"
	"testing"

	"isynspec/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Workdir.Strategy = config.StrategySpecified
	cfg.Workdir.Path = filepath.Join(base, "work")
	cfg.Store.Path = filepath.Join(base, "lines.db")
	cfg.Logging.Dir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithWorkdirStrategy overrides the working directory strategy.
func WithWorkdirStrategy(strategy string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Workdir.Strategy = strategy
	}
}

// WithInputFiles sets the files staged on session init.
func WithInputFiles(files ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Session.InputFiles = files
	}
}

// WithOutputFiles sets the files collected on session close.
func WithOutputFiles(dir string, files ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Session.OutputDir = dir
		cfg.Session.OutputFiles = files
	}
}
