package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"plexify/internal/logging"
	"plexify/internal/media"
)

// stubEngine installs a fake ffmpeg on PATH. The script writes its last
// argument (the output path) and exits with the given status.
func stubEngine(t *testing.T, exitCode int, writeOutput bool) {
	t.Helper()
	dir := t.TempDir()
	script := "#!/bin/sh\n"
	if writeOutput {
		script += "for out; do :; done\nprintf 'stub' > \"$out\"\n"
	}
	if exitCode != 0 {
		script += "echo 'stub engine failure' >&2\n"
	}
	script += "exit " + strconv.Itoa(exitCode) + "\n"
	if err := os.WriteFile(filepath.Join(dir, "ffmpeg"), []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func mediaFixture(t *testing.T, rel string) string {
	t.Helper()
	root := t.TempDir()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte("media"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return root
}

func TestProcessPublishesFinalOutput(t *testing.T) {
	stubEngine(t, 0, true)
	root := mediaFixture(t, "movie.mkv")
	job := testJob(t, "movie.mkv", media.KindEmbeddedSubtitle)

	p := NewProcessor(Options{}, logging.NewNop())
	if err := p.Process(context.Background(), job, root); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "movie.mp4")); err != nil {
		t.Fatalf("final output missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "movie.part.mp4")); !os.IsNotExist(err) {
		t.Fatalf("part file left behind: %v", err)
	}
}

func TestProcessEngineFailure(t *testing.T) {
	stubEngine(t, 3, true)
	root := mediaFixture(t, "movie.mkv")
	job := testJob(t, "movie.mkv", media.KindEmbeddedSubtitle)

	p := NewProcessor(Options{}, logging.NewNop())
	err := p.Process(context.Background(), job, root)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.Code != 3 {
		t.Fatalf("expected exit code 3, got %d", exitErr.Code)
	}
	if exitErr.Stderr == "" {
		t.Fatal("expected captured stderr")
	}
	if _, err := os.Stat(filepath.Join(root, "movie.part.mp4")); !os.IsNotExist(err) {
		t.Fatalf("part file not cleaned up after failure: %v", err)
	}
}

func TestProcessMissingOutputIsFailure(t *testing.T) {
	stubEngine(t, 0, false)
	root := mediaFixture(t, "movie.mkv")
	job := testJob(t, "movie.mkv", media.KindEmbeddedSubtitle)

	p := NewProcessor(Options{}, logging.NewNop())
	err := p.Process(context.Background(), job, root)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError for missing output, got %v", err)
	}
}

func TestDisableSources(t *testing.T) {
	root := mediaFixture(t, "shows/pilot.webm")
	if err := os.WriteFile(filepath.Join(root, "shows", "pilot.vtt"), []byte("WEBVTT"), 0o644); err != nil {
		t.Fatalf("write subtitle: %v", err)
	}
	job := testJob(t, "shows/pilot.webm", media.KindExternalSubtitle)

	p := NewProcessor(Options{}, logging.NewNop())
	if err := p.DisableSources(job, root); err != nil {
		t.Fatalf("DisableSources failed: %v", err)
	}

	for _, rel := range []string{"shows/pilot.webm.disabled", "shows/pilot.vtt.disabled"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("expected %s: %v", rel, err)
		}
	}
	for _, rel := range []string{"shows/pilot.webm", "shows/pilot.vtt"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); !os.IsNotExist(err) {
			t.Fatalf("expected %s gone: %v", rel, err)
		}
	}
}

func TestDisableSourcesWithoutSubtitle(t *testing.T) {
	root := mediaFixture(t, "movie.mkv")
	job := testJob(t, "movie.mkv", media.KindEmbeddedSubtitle)

	p := NewProcessor(Options{}, logging.NewNop())
	if err := p.DisableSources(job, root); err != nil {
		t.Fatalf("DisableSources failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "movie.mkv.disabled")); err != nil {
		t.Fatalf("expected disabled source: %v", err)
	}
}
