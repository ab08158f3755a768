package store

import "errors"

var (
	// ErrAlreadyGone reports that a transition lost the race: the source
	// entry was moved or removed by another process first. Callers treat
	// this as an expected outcome, never a failure.
	ErrAlreadyGone = errors.New("entry already gone")

	// ErrAlreadyExists reports that a create found an existing entry for
	// the same name. The enqueue path treats this as successful
	// deduplication.
	ErrAlreadyExists = errors.New("entry already exists")
)
