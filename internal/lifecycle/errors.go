package lifecycle

import (
	"errors"
	"fmt"
)

var (
	// ErrVersionConflict is returned by a Repository when the stored
	// version no longer matches the version the writer read.
	ErrVersionConflict = errors.New("version conflict")

	// ErrNotFound is returned by a Repository for an unknown record id.
	ErrNotFound = errors.New("record not found")

	// ErrNotPersisted is returned when an operation other than Create is
	// given a record that was never saved. New records start with Create.
	ErrNotPersisted = errors.New("record has not been created")

	ErrMissingActor     = errors.New("actor is required")
	ErrMissingReference = errors.New("subject and counterparty references are required")
)

// UnknownKindError indicates a kind that has no transition table.
type UnknownKindError struct {
	Kind Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown record kind %q", string(e.Kind))
}

// UnknownStateError indicates a state outside the kind's declared set.
type UnknownStateError struct {
	Kind  Kind
	State State
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown %s state %q", e.Kind, string(e.State))
}

// IllegalTransitionError indicates a requested transition that the
// kind's table does not declare. Leaving a terminal state always
// produces this error.
type IllegalTransitionError struct {
	Kind Kind
	From State
	To   State
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// ConcurrentModificationError indicates that another writer committed a
// change to the record after it was loaded. Callers should reload and
// decide again.
type ConcurrentModificationError struct {
	RecordID        string
	ExpectedVersion int64
	Err             error
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("record %s was modified concurrently (expected version %d)", e.RecordID, e.ExpectedVersion)
}

func (e *ConcurrentModificationError) Unwrap() error { return e.Err }

// PersistenceError indicates the repository failed to durably store a
// validated change. The change must be treated as not committed.
type PersistenceError struct {
	Op       string
	RecordID string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s of record %s: %v", e.Op, e.RecordID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
