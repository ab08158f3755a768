package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"plexify/internal/media"
)

// Location names one of the store's state directories.
type Location string

const (
	// Queued holds descriptors waiting for a worker.
	Queued Location = "_queue"
	// Claimed holds descriptors owned by exactly one worker.
	Claimed Location = "_in_progress"
	// Completed holds descriptors whose transcode succeeded.
	Completed Location = "_completed"
)

// Locations lists the state directories in lifecycle order.
var Locations = []Location{Queued, Claimed, Completed}

// markerDir holds ephemeral per-identity enqueue markers. It is not a job
// state; entries exist only while an enqueue attempt is in flight.
const markerDir = "_enqueue"

const jobSuffix = ".job"

// Ref is a handle to a descriptor entry observed in a location. Entries may
// vanish at any moment as other workers act; a Ref is a candidate, not a
// guarantee.
type Ref struct {
	Name string
}

// RefFor returns the store entry handle for a job identity.
func RefFor(identity string) Ref {
	return Ref{Name: identity + jobSuffix}
}

// Identity returns the job identity encoded in the entry name.
func (r Ref) Identity() string {
	return strings.TrimSuffix(r.Name, jobSuffix)
}

// Store is a handle on the on-disk state layout rooted at a work directory.
type Store struct {
	root string
}

// Open ensures the state directories exist and returns a store handle. The
// layout is stable and shared: other processes (workers, status tooling, the
// clean command) operate on the same directories.
func Open(workRoot string) (*Store, error) {
	root, err := filepath.Abs(workRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve work root: %w", err)
	}
	s := &Store{root: root}
	for _, loc := range Locations {
		if err := os.MkdirAll(s.dir(loc), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", loc, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, markerDir), 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", markerDir, err)
	}
	return s, nil
}

// Root returns the work root the store lives under.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) dir(loc Location) string {
	return filepath.Join(s.root, string(loc))
}

func (s *Store) entryPath(loc Location, ref Ref) string {
	return filepath.Join(s.dir(loc), ref.Name)
}

// List returns a best-effort snapshot of the entries currently in loc.
// Concurrent workers move entries freely, so callers must treat every
// returned Ref as a candidate that may already be gone.
func (s *Store) List(loc Location) ([]Ref, error) {
	entries, err := os.ReadDir(s.dir(loc))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", loc, err)
	}
	refs := make([]Ref, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), jobSuffix) {
			continue
		}
		refs = append(refs, Ref{Name: entry.Name()})
	}
	return refs, nil
}

// Create atomically writes job into loc, failing with ErrAlreadyExists when
// an entry with the same identity is already present. The descriptor body is
// written to a private temp file first and published with link(2), so no
// process can observe a partially written entry.
func (s *Store) Create(loc Location, job *media.Job) error {
	data, err := job.Encode()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir(loc), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create %s entry for %s: %w", loc, job.Identity, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s entry for %s: %w", loc, job.Identity, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s entry for %s: %w", loc, job.Identity, err)
	}

	target := s.entryPath(loc, RefFor(job.Identity))
	if err := os.Link(tmpPath, target); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("create %s entry for %s: %w", loc, job.Identity, ErrAlreadyExists)
		}
		return fmt.Errorf("create %s entry for %s: %w", loc, job.Identity, err)
	}
	return nil
}

// Transition atomically moves ref from one location to another. It succeeds
// only if the source entry still exists at the moment of the rename; when
// another process moved it first the result is ErrAlreadyGone and nothing
// has changed. This is the at-most-one-winner primitive the claim protocol
// is built on: the filesystem serializes concurrent renames of the same
// source so that exactly one succeeds.
func (s *Store) Transition(ref Ref, from, to Location) error {
	err := os.Rename(s.entryPath(from, ref), s.entryPath(to, ref))
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("move %s from %s to %s: %w", ref.Identity(), from, to, ErrAlreadyGone)
	}
	return fmt.Errorf("move %s from %s to %s: %w", ref.Identity(), from, to, err)
}

// Load reads and decodes the descriptor for ref in loc. A missing entry is
// reported as ErrAlreadyGone so scan loops can skip candidates that another
// worker claimed between List and Load.
func (s *Store) Load(loc Location, ref Ref) (*media.Job, error) {
	data, err := os.ReadFile(s.entryPath(loc, ref))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s from %s: %w", ref.Identity(), loc, ErrAlreadyGone)
		}
		return nil, fmt.Errorf("load %s from %s: %w", ref.Identity(), loc, err)
	}
	job, err := media.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s from %s: %w", ref.Identity(), loc, err)
	}
	return job, nil
}

// Contains reports whether any state location currently holds identity.
func (s *Store) Contains(identity string) (bool, error) {
	ref := RefFor(identity)
	for _, loc := range Locations {
		if _, err := os.Lstat(s.entryPath(loc, ref)); err == nil {
			return true, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("check %s in %s: %w", identity, loc, err)
		}
	}
	return false, nil
}

// Mark creates the ephemeral enqueue marker for identity. ErrAlreadyExists
// means another process is enqueueing the same identity right now.
func (s *Store) Mark(identity string) error {
	path := filepath.Join(s.root, markerDir, identity+".mark")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("mark %s: %w", identity, ErrAlreadyExists)
		}
		return fmt.Errorf("mark %s: %w", identity, err)
	}
	return f.Close()
}

// Unmark removes the enqueue marker. It must run on every exit path of an
// enqueue attempt so a failed write never strands a marker.
func (s *Store) Unmark(identity string) {
	_ = os.Remove(filepath.Join(s.root, markerDir, identity+".mark"))
}

// Counts returns the number of entries per state location, for status
// tooling. The snapshot is best effort like List.
func (s *Store) Counts() (map[Location]int, error) {
	counts := make(map[Location]int, len(Locations))
	for _, loc := range Locations {
		refs, err := s.List(loc)
		if err != nil {
			return nil, err
		}
		counts[loc] = len(refs)
	}
	return counts, nil
}

// Clean removes the state directories wholesale. This is the only path that
// destroys descriptors; callers must hold the store's exclusive lock first.
func (s *Store) Clean() error {
	for _, loc := range Locations {
		if err := os.RemoveAll(s.dir(loc)); err != nil {
			return fmt.Errorf("remove %s: %w", loc, err)
		}
	}
	if err := os.RemoveAll(filepath.Join(s.root, markerDir)); err != nil {
		return fmt.Errorf("remove %s: %w", markerDir, err)
	}
	return nil
}
