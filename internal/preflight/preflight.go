// Package preflight validates the environment before a worker starts: the
// media and work roots must be accessible directories and the external
// binaries must be on PATH. Failures here are configuration problems that
// abort startup rather than per-job errors.
package preflight

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"plexify/internal/deps"
	"plexify/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Options selects which checks apply.
type Options struct {
	MediaRoot  string
	WorkRoot   string
	Background bool
}

// RunAll executes all applicable checks and returns their results.
func RunAll(opts Options) []Result {
	results := []Result{
		CheckDirectoryAccess("Media root", opts.MediaRoot),
		CheckDirectoryAccess("Work root", opts.WorkRoot),
	}

	requirements := []deps.Requirement{
		{Name: "FFmpeg", Command: "ffmpeg", Description: "Required for transcoding"},
	}
	if opts.Background {
		requirements = append(requirements, deps.Requirement{
			Name: "nice", Command: "nice", Description: "Required for background mode",
		})
	}
	for _, status := range deps.CheckBinaries(requirements) {
		results = append(results, Result{
			Name:   status.Name,
			Passed: status.Available,
			Detail: status.Detail,
		})
	}
	return results
}

// Verify runs all checks and converts any failure into a configuration error
// listing what failed.
func Verify(opts Options) error {
	var failures []string
	for _, result := range RunAll(opts) {
		if !result.Passed {
			failures = append(failures, fmt.Sprintf("%s: %s", result.Name, result.Detail))
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "verify", strings.Join(failures, "; "), nil)
}

// CheckDirectoryAccess verifies that path exists, is a directory, and grants
// read, write, and traverse permission.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}
