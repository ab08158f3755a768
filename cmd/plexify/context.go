package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"plexify/internal/config"
	"plexify/internal/logging"
	"plexify/internal/media"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// buildLogger constructs the logger for a command run, writing to stdout and,
// when a log directory is configured, to plexify.log inside it.
func (c *commandContext) buildLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	paths := []string{"stdout"}
	if cfg.Paths.LogDir != "" {
		paths = append(paths, filepath.Join(cfg.Paths.LogDir, "plexify.log"))
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: paths,
	})
}

// resolveWorkRoot returns the state directory for a command: the --work-dir
// flag when given, otherwise the media root itself.
func resolveWorkRoot(mediaRoot, workDirFlag string) (string, error) {
	if strings.TrimSpace(workDirFlag) == "" {
		return mediaRoot, nil
	}
	return config.ExpandPath(workDirFlag)
}

// encodingParams snapshots the effective encoding parameters, applying a
// --preset override when one was given.
func encodingParams(cfg *config.Config, preset string) (media.EncodingParameters, error) {
	params := media.EncodingParameters{
		Preset:       cfg.Encoding.Preset,
		CRF:          cfg.Encoding.CRF,
		AudioBitrate: cfg.Encoding.AudioBitrate,
	}
	if trimmed := strings.TrimSpace(preset); trimmed != "" {
		if !config.ValidPreset(trimmed) {
			return params, errUnknownPreset(trimmed)
		}
		params.Preset = trimmed
	}
	return params, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
