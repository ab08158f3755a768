package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MediaTree creates a media root populated with the given relative paths.
// Each file gets placeholder content; .vtt siblings must be listed explicitly.
func MediaTree(t testing.TB, rels ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range rels {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(rel)), "media")
	}
	return root
}
