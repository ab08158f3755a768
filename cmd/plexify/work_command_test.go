package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"plexify/internal/services"
	"plexify/internal/testsupport"
)

func runCLIContext(ctx context.Context, t *testing.T, args []string, configPath string) error {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	return cmd.ExecuteContext(ctx)
}

func TestWorkFailsPreflightForMissingMediaRoot(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(env.baseDir, "missing")

	_, _, err := runCLI(t, []string{"work", missing, "--work-dir", filepath.Join(env.baseDir, "state")}, env.configPath)
	if err == nil {
		t.Fatal("expected preflight failure")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestWorkProcessesQueueUntilCancelled(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.StubEngine(t)
	mediaRoot := filepath.Join(env.baseDir, "media")
	writeMedia(t, mediaRoot, "movie.mkv")

	if _, _, err := runCLI(t, []string{"scan", mediaRoot}, env.configPath); err != nil {
		t.Fatalf("scan: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runCLIContext(ctx, t, []string{"work", mediaRoot}, env.configPath)
	}()

	output := filepath.Join(mediaRoot, "movie.mp4")
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(output); err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if _, err := os.Stat(output); err != nil {
		cancel()
		t.Fatalf("worker never produced output: %v", err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("work returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}

	if _, err := os.Stat(filepath.Join(mediaRoot, "movie.mkv.disabled")); err != nil {
		t.Fatalf("source not disabled: %v", err)
	}
}
