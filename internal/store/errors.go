package store

import "errors"

var (
	// ErrNotFound is returned when a keyed row does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrConflict is returned when a versioned write lost a race with a
	// concurrent update. Callers must re-read fresh state before retrying.
	ErrConflict = errors.New("store: version conflict")
)
