package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables recognized for encoding and worker overrides.
const (
	EnvPreset       = "PLEXIFY_PRESET"
	EnvCRF          = "PLEXIFY_CRF"
	EnvAudioBitrate = "PLEXIFY_AUDIO_BITRATE"
	EnvPollInterval = "PLEXIFY_SLEEP_INTERVAL"
)

// LoadDotEnv loads a .env file from the working directory when present.
// Existing process environment always wins.
func LoadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	_ = godotenv.Load()
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv(EnvPreset)); v != "" {
		c.Encoding.Preset = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCRF)); v != "" {
		if crf, err := strconv.Atoi(v); err == nil {
			c.Encoding.CRF = crf
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvAudioBitrate)); v != "" {
		c.Encoding.AudioBitrate = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPollInterval)); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Worker.PollInterval = secs
		}
	}
}
