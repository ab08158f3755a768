package main

import (
	"path/filepath"
	"testing"

	"plexify/internal/store"
)

func TestScanQueuesCandidates(t *testing.T) {
	env := setupCLITestEnv(t)
	mediaRoot := filepath.Join(env.baseDir, "media")
	writeMedia(t, mediaRoot, "movie.mkv")
	writeMedia(t, mediaRoot, "shows/pilot.webm")
	writeMedia(t, mediaRoot, "shows/pilot.vtt")
	writeMedia(t, mediaRoot, "shows/orphan.webm")

	out, _, err := runCLI(t, []string{"scan", mediaRoot}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "queued:             2")
	requireContains(t, out, "missing subtitle:   1")

	st, err := store.Open(mediaRoot)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	refs, err := st.List(store.Queued)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 queued descriptors, got %d", len(refs))
	}
}

func TestScanIsIdempotent(t *testing.T) {
	env := setupCLITestEnv(t)
	mediaRoot := filepath.Join(env.baseDir, "media")
	writeMedia(t, mediaRoot, "movie.mkv")

	if _, _, err := runCLI(t, []string{"scan", mediaRoot}, env.configPath); err != nil {
		t.Fatalf("first scan: %v", err)
	}
	out, _, err := runCLI(t, []string{"scan", mediaRoot}, env.configPath)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	requireContains(t, out, "queued:             0")
	requireContains(t, out, "already tracked:    1")
}

func TestScanSeparateWorkDir(t *testing.T) {
	env := setupCLITestEnv(t)
	mediaRoot := filepath.Join(env.baseDir, "media")
	workDir := filepath.Join(env.baseDir, "state")
	writeMedia(t, mediaRoot, "movie.mkv")

	if _, _, err := runCLI(t, []string{"scan", mediaRoot, "--work-dir", workDir}, env.configPath); err != nil {
		t.Fatalf("scan: %v", err)
	}

	st, err := store.Open(workDir)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	refs, err := st.List(store.Queued)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("expected 1 queued descriptor in work dir, got %d", len(refs))
	}
}

func TestScanRejectsUnknownPreset(t *testing.T) {
	env := setupCLITestEnv(t)
	mediaRoot := filepath.Join(env.baseDir, "media")
	writeMedia(t, mediaRoot, "movie.mkv")

	if _, _, err := runCLI(t, []string{"scan", mediaRoot, "--preset", "bogus"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}
