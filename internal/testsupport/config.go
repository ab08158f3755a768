// Package testsupport provides shared fixtures for package tests: seeded
// configurations, media tree builders, and a stubbed transcode engine.
package testsupport

import (
	"path/filepath"
	"testing"

	"plexify/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with a unique temp log directory per
// test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithEncoding overrides the encoding parameters on the test config.
func WithEncoding(preset string, crf int, audioBitrate string) ConfigOption {
	return func(c *config.Config) {
		c.Encoding.Preset = preset
		c.Encoding.CRF = crf
		c.Encoding.AudioBitrate = audioBitrate
	}
}

// WithWorkerTiming overrides the poll interval and retry delay, in seconds.
func WithWorkerTiming(pollInterval, retryDelay int) ConfigOption {
	return func(c *config.Config) {
		c.Worker.PollInterval = pollInterval
		c.Worker.RetryDelay = retryDelay
	}
}
