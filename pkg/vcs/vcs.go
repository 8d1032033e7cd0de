// Package vcs defines the operation set planlog needs from a
// version-controlled backing log. The log is a linear sequence of entries
// with a single movable working pointer; implementations map these
// primitives onto a real VCS (see the jj subpackage) or onto memory for
// tests (see the memlog subpackage).
package vcs

import (
	"context"
	"errors"
	"fmt"
)

// Entry is one unit of the backing log: a stable identifier plus the raw
// message text. The identifier never changes for the lifetime of the entry,
// even when the entry is relocated within the sequence.
type Entry struct {
	ID      string
	Message string
}

// Neighborhood is the linear surroundings of the working pointer.
// History is ordered oldest-first and ends immediately before Current;
// Future starts immediately after Current.
type Neighborhood struct {
	History []Entry
	Current Entry
	Future  []Entry
}

// CreateOptions positions a new entry. Exactly one of After or Before is
// set. When MoveToIt is false the working pointer is left untouched.
type CreateOptions struct {
	After    string
	Before   string
	MoveToIt bool
}

// SlideOptions relocates an existing entry without changing its identifier
// or content. Exactly one of After or Before is set.
type SlideOptions struct {
	ID     string
	After  string
	Before string
}

// Ops is the primitive operation set against one repository's log. All
// methods are synchronous and fallible; callers are expected to serialize
// mutating calls against a single repository.
type Ops interface {
	// CurrentID returns the identifier of the entry the working pointer
	// references.
	CurrentID(ctx context.Context) (string, error)

	// Neighborhood returns the working pointer's entry together with its
	// linear history and future.
	Neighborhood(ctx context.Context) (Neighborhood, error)

	// Description returns the full raw message of the given entry, or of
	// the current entry when id is empty.
	Description(ctx context.Context, id string) (string, error)

	// SetDescription overwrites the full raw message of the given entry,
	// or of the current entry when id is empty.
	SetDescription(ctx context.Context, id, text string) error

	// IsEmpty reports whether the given entry (current when id is empty)
	// carries no content changes.
	IsEmpty(ctx context.Context, id string) (bool, error)

	// CreateEntry inserts a new empty entry at the requested position and
	// returns its identifier.
	CreateEntry(ctx context.Context, opts CreateOptions) (string, error)

	// SlideEntry relocates an existing entry to the requested position.
	SlideEntry(ctx context.Context, opts SlideOptions) error

	// AbandonEntry deletes an empty entry, relinking its neighbors.
	AbandonEntry(ctx context.Context, id string) error

	// MovePointer relocates the working pointer to the given entry.
	MovePointer(ctx context.Context, id string) error
}

// OpError wraps a failure from a backing-log operation. Failures are always
// propagated verbatim and never retried by the callers in this module.
type OpError struct {
	Op  string // the Ops method that failed, e.g. "slideEntry"
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("vcs: %s failed: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// WrapOp tags err as a backing-log failure of the named operation. A nil
// err returns nil; an err that is already an *OpError is returned as-is.
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	var oe *OpError
	if errors.As(err, &oe) {
		return err
	}
	return &OpError{Op: op, Err: err}
}
