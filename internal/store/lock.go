package store

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".plexify.lock"

// Lock guards the store against wholesale deletion while workers are active.
// Workers and scanners hold the lock shared; clean requires it exclusively,
// so a clean can never race an in-flight claim or enqueue.
type Lock struct {
	fl *flock.Flock
}

// NewLock returns the lock for the store's work root.
func (s *Store) NewLock() *Lock {
	return &Lock{fl: flock.New(filepath.Join(s.root, lockFileName))}
}

// AcquireShared takes the lock in shared mode, blocking until available.
func (l *Lock) AcquireShared() error {
	if err := l.fl.RLock(); err != nil {
		return fmt.Errorf("acquire shared store lock: %w", err)
	}
	return nil
}

// TryExclusive attempts the exclusive lock without blocking. It returns
// false when any shared or exclusive holder exists.
func (l *Lock) TryExclusive() (bool, error) {
	ok, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire exclusive store lock: %w", err)
	}
	return ok, nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.fl.Path()
}
