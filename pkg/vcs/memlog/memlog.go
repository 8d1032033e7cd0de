// Package memlog is an in-memory implementation of the backing-log
// operation set. It models the log as an ordered entry slice with a single
// working pointer and is the backend every store test runs against; the
// SetDirty hook simulates an entry that carries real file changes.
package memlog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/entrhq/planlog/pkg/vcs"
)

type entry struct {
	id      string
	message string
	dirty   bool // true when the entry carries content changes
}

// Log is an in-memory backing log. A fresh Log holds one empty root entry
// with the working pointer on it, like a freshly initialized repository.
type Log struct {
	mu      sync.Mutex
	entries []*entry
	pointer string
}

var _ vcs.Ops = (*Log)(nil)

// New creates a log with a single empty root entry.
func New() *Log {
	root := &entry{id: newID()}
	return &Log{
		entries: []*entry{root},
		pointer: root.id,
	}
}

func newID() string {
	return uuid.New().String()
}

// Append adds an entry with the given message at the end of the log and
// returns its identifier. The working pointer does not move.
func (l *Log) Append(message string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := &entry{id: newID(), message: message}
	l.entries = append(l.entries, e)
	return e.id
}

// SetDirty marks whether the entry carries content changes.
func (l *Log) SetDirty(id string, dirty bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, _, err := l.find(id)
	if err != nil {
		return err
	}
	e.dirty = dirty
	return nil
}

// Entries returns a snapshot of the log in order.
func (l *Log) Entries() []vcs.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]vcs.Entry, len(l.entries))
	for i, e := range l.entries {
		out[i] = vcs.Entry{ID: e.id, Message: e.message}
	}
	return out
}

// Len returns the number of entries in the log.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Log) find(id string) (*entry, int, error) {
	for i, e := range l.entries {
		if e.id == id {
			return e, i, nil
		}
	}
	return nil, -1, fmt.Errorf("memlog: unknown entry %s", id)
}

func (l *Log) resolve(id string) (*entry, int, error) {
	if id == "" {
		id = l.pointer
	}
	return l.find(id)
}

// CurrentID implements vcs.Ops.
func (l *Log) CurrentID(ctx context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pointer, nil
}

// Neighborhood implements vcs.Ops.
func (l *Log) Neighborhood(ctx context.Context) (vcs.Neighborhood, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, i, err := l.find(l.pointer)
	if err != nil {
		return vcs.Neighborhood{}, err
	}

	n := vcs.Neighborhood{
		Current: vcs.Entry{ID: l.entries[i].id, Message: l.entries[i].message},
	}
	for _, e := range l.entries[:i] {
		n.History = append(n.History, vcs.Entry{ID: e.id, Message: e.message})
	}
	for _, e := range l.entries[i+1:] {
		n.Future = append(n.Future, vcs.Entry{ID: e.id, Message: e.message})
	}
	return n, nil
}

// Description implements vcs.Ops.
func (l *Log) Description(ctx context.Context, id string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, _, err := l.resolve(id)
	if err != nil {
		return "", err
	}
	return e.message, nil
}

// SetDescription implements vcs.Ops.
func (l *Log) SetDescription(ctx context.Context, id, text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, _, err := l.resolve(id)
	if err != nil {
		return err
	}
	e.message = text
	return nil
}

// IsEmpty implements vcs.Ops.
func (l *Log) IsEmpty(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, _, err := l.resolve(id)
	if err != nil {
		return false, err
	}
	return !e.dirty, nil
}

// CreateEntry implements vcs.Ops.
func (l *Log) CreateEntry(ctx context.Context, opts vcs.CreateOptions) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pos, err := l.insertionIndex(opts.After, opts.Before)
	if err != nil {
		return "", err
	}

	e := &entry{id: newID()}
	l.entries = append(l.entries, nil)
	copy(l.entries[pos+1:], l.entries[pos:])
	l.entries[pos] = e

	if opts.MoveToIt {
		l.pointer = e.id
	}
	return e.id, nil
}

// SlideEntry implements vcs.Ops.
func (l *Log) SlideEntry(ctx context.Context, opts vcs.SlideOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, i, err := l.find(opts.ID)
	if err != nil {
		return err
	}
	if opts.After == opts.ID || opts.Before == opts.ID {
		return fmt.Errorf("memlog: cannot slide entry %s relative to itself", opts.ID)
	}

	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	pos, err := l.insertionIndex(opts.After, opts.Before)
	if err != nil {
		// Restore the original position; the slide did not happen.
		l.entries = append(l.entries, nil)
		copy(l.entries[i+1:], l.entries[i:])
		l.entries[i] = e
		return err
	}

	l.entries = append(l.entries, nil)
	copy(l.entries[pos+1:], l.entries[pos:])
	l.entries[pos] = e
	return nil
}

// AbandonEntry implements vcs.Ops.
func (l *Log) AbandonEntry(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, i, err := l.find(id)
	if err != nil {
		return err
	}
	if e.dirty {
		return fmt.Errorf("memlog: cannot abandon non-empty entry %s", id)
	}
	if len(l.entries) == 1 {
		return fmt.Errorf("memlog: cannot abandon the last entry")
	}

	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	if l.pointer == id {
		// Fall back to the nearest older neighbor, like abandoning the
		// checked-out change does in a real VCS.
		if i > 0 {
			l.pointer = l.entries[i-1].id
		} else {
			l.pointer = l.entries[0].id
		}
	}
	return nil
}

// MovePointer implements vcs.Ops.
func (l *Log) MovePointer(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, _, err := l.find(id); err != nil {
		return err
	}
	l.pointer = id
	return nil
}

// insertionIndex resolves the target slot for a create or slide. Exactly
// one of after/before must name an existing entry.
func (l *Log) insertionIndex(after, before string) (int, error) {
	switch {
	case after != "" && before != "":
		return 0, fmt.Errorf("memlog: position takes either after or before, not both")
	case after != "":
		_, i, err := l.find(after)
		if err != nil {
			return 0, err
		}
		return i + 1, nil
	case before != "":
		_, i, err := l.find(before)
		if err != nil {
			return 0, err
		}
		return i, nil
	default:
		return 0, fmt.Errorf("memlog: position requires after or before")
	}
}
