package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

type engineStub struct {
	exitCode    int
	skipOutput  bool
	markerAfter string
}

// EngineOption customizes the stubbed engine's behavior.
type EngineOption func(*engineStub)

// WithExitCode makes the stubbed engine fail with the given status.
func WithExitCode(code int) EngineOption {
	return func(s *engineStub) { s.exitCode = code }
}

// WithNoOutput makes the stubbed engine exit 0 without producing a file.
func WithNoOutput() EngineOption {
	return func(s *engineStub) { s.skipOutput = true }
}

// WithInvocationMarker makes each engine run append a line to the given file,
// so tests can count invocations.
func WithInvocationMarker(path string) EngineOption {
	return func(s *engineStub) { s.markerAfter = path }
}

// StubEngine installs fake ffmpeg and nice executables on PATH. The ffmpeg
// stub treats its last argument as the output path and writes it before
// exiting with the configured status.
func StubEngine(t testing.TB, opts ...EngineOption) {
	t.Helper()

	stub := engineStub{}
	for _, opt := range opts {
		opt(&stub)
	}

	binDir := filepath.Join(t.TempDir(), "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}

	script := "#!/bin/sh\n"
	if stub.markerAfter != "" {
		script += "echo run >> " + shellQuote(stub.markerAfter) + "\n"
	}
	if !stub.skipOutput {
		script += "for out; do :; done\nprintf 'stub' > \"$out\"\n"
	}
	if stub.exitCode != 0 {
		script += "echo 'stub engine failure' >&2\n"
	}
	script += "exit " + strconv.Itoa(stub.exitCode) + "\n"

	if err := os.WriteFile(filepath.Join(binDir, "ffmpeg"), []byte(script), 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}

	nice := "#!/bin/sh\nshift 2\nexec \"$@\"\n"
	if err := os.WriteFile(filepath.Join(binDir, "nice"), []byte(nice), 0o755); err != nil {
		t.Fatalf("write nice stub: %v", err)
	}

	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func shellQuote(s string) string {
	return "'" + s + "'"
}
