package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateOpenSession is returned when inserting an open session
	// would give an owner a second running session. The store enforces
	// this with a partial unique index, so the invariant holds even when
	// two starts race past the service-level check.
	ErrDuplicateOpenSession = errors.New("owner already has an open session")

	// ErrSessionClosed is returned when a close is attempted on a session
	// whose end time is already set.
	ErrSessionClosed = errors.New("session already closed")
)
