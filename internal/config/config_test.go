package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"plexify/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "plexify", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Encoding.Preset != "veryfast" {
		t.Fatalf("unexpected default preset: %q", cfg.Encoding.Preset)
	}
	if cfg.Encoding.CRF != 23 {
		t.Fatalf("unexpected default crf: %d", cfg.Encoding.CRF)
	}
	if cfg.Worker.PollInterval != 60 {
		t.Fatalf("unexpected default poll interval: %d", cfg.Worker.PollInterval)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[encoding]
preset = "slow"
crf = 18
audio_bitrate = "192k"

[worker]
poll_interval = 5
retry_delay = 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Encoding.Preset != "slow" || cfg.Encoding.CRF != 18 {
		t.Fatalf("unexpected encoding config: %+v", cfg.Encoding)
	}
	if cfg.Worker.PollInterval != 5 || cfg.Worker.RetryDelay != 2 {
		t.Fatalf("unexpected worker config: %+v", cfg.Worker)
	}
}

func TestLoadRejectsInvalidPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[encoding]\npreset = \"warp9\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestLoadRejectsInvalidCRF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[encoding]\ncrf = 99\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for out-of-range crf")
	}
}

func TestEnvOverridesWin(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.EnvPreset, "slower")
	t.Setenv(config.EnvCRF, "20")
	t.Setenv(config.EnvAudioBitrate, "160k")
	t.Setenv(config.EnvPollInterval, "7")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Encoding.Preset != "slower" {
		t.Fatalf("expected env preset override, got %q", cfg.Encoding.Preset)
	}
	if cfg.Encoding.CRF != 20 {
		t.Fatalf("expected env crf override, got %d", cfg.Encoding.CRF)
	}
	if cfg.Encoding.AudioBitrate != "160k" {
		t.Fatalf("expected env bitrate override, got %q", cfg.Encoding.AudioBitrate)
	}
	if cfg.Worker.PollInterval != 7 {
		t.Fatalf("expected env poll interval override, got %d", cfg.Worker.PollInterval)
	}
}

func TestCreateSample(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Encoding.Preset != "veryfast" {
		t.Fatalf("sample config changed defaults: %+v", cfg.Encoding)
	}
}
