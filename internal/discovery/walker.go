package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"plexify/internal/logging"
	"plexify/internal/media"
)

// Candidate is one discovered media file, identified by its slash-separated
// path relative to the media root and its kind hint from the extension.
type Candidate struct {
	RelPath string
	Kind    media.Kind
}

// stateDirs are the store's own directories, skipped when the work root
// lives inside the media tree.
var stateDirs = map[string]struct{}{
	"_queue":       {},
	"_in_progress": {},
	"_completed":   {},
	"_enqueue":     {},
}

// Scan walks the media root and returns candidates in discovery order.
// Unreadable subtrees are logged and skipped rather than failing the scan.
func Scan(mediaRoot string, logger *slog.Logger) ([]Candidate, error) {
	log := logging.WithComponent(logger, "discovery")

	filter, err := LoadFilter(mediaRoot)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	walkErr := filepath.WalkDir(mediaRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("skipping unreadable path", logging.String("path", p), logging.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(mediaRoot, p)
		if relErr != nil {
			return relErr
		}
		relSlash := filepath.ToSlash(rel)
		if relSlash == "." {
			return nil
		}

		if d.IsDir() {
			if _, isState := stateDirs[d.Name()]; isState {
				return filepath.SkipDir
			}
			if filter.Ignored(relSlash, true) {
				log.Debug("ignoring directory", logging.String("path", relSlash))
				return filepath.SkipDir
			}
			return nil
		}

		// Disabled sources keep their media extension behind ".disabled",
		// so they never map to a kind here.
		kind, ok := media.KindForPath(relSlash)
		if !ok {
			return nil
		}
		if filter.Ignored(relSlash, false) {
			log.Debug("ignoring file", logging.String("path", relSlash))
			return nil
		}

		candidates = append(candidates, Candidate{RelPath: relSlash, Kind: kind})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan %s: %w", mediaRoot, walkErr)
	}

	return candidates, nil
}
