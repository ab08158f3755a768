package config

import (
	"errors"
	"fmt"
	"regexp"
)

var ffmpegPresets = map[string]struct{}{
	"ultrafast": {},
	"superfast": {},
	"veryfast":  {},
	"faster":    {},
	"fast":      {},
	"medium":    {},
	"slow":      {},
	"slower":    {},
	"veryslow":  {},
}

var bitratePattern = regexp.MustCompile(`^[0-9]+[km]?$`)

// ValidPreset reports whether name is a known ffmpeg preset.
func ValidPreset(name string) bool {
	_, ok := ffmpegPresets[name]
	return ok
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateWorker(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEncoding() error {
	if _, ok := ffmpegPresets[c.Encoding.Preset]; !ok {
		return fmt.Errorf("encoding.preset: unknown ffmpeg preset %q", c.Encoding.Preset)
	}
	if c.Encoding.CRF < 0 || c.Encoding.CRF > 51 {
		return errors.New("encoding.crf must be between 0 and 51")
	}
	if !bitratePattern.MatchString(c.Encoding.AudioBitrate) {
		return fmt.Errorf("encoding.audio_bitrate: invalid value %q", c.Encoding.AudioBitrate)
	}
	return nil
}

func (c *Config) validateWorker() error {
	if c.Worker.PollInterval < 1 {
		return errors.New("worker.poll_interval must be at least 1 second")
	}
	if c.Worker.RetryDelay < 1 {
		return errors.New("worker.retry_delay must be at least 1 second")
	}
	if c.Worker.BackgroundNice < 0 || c.Worker.BackgroundNice > 19 {
		return errors.New("worker.background_nice must be between 0 and 19")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
