// Package jj implements the backing-log operation set over a Jujutsu
// repository by shelling out to the jj binary. Change IDs serve as entry
// identifiers: they are stable across rebases, which is exactly the
// identity-preservation the slide operation requires.
//
// The adapter assumes the neighborhood of the working copy is linear. That
// holds for logs planlog itself writes; a repository with divergent
// descendants of the working copy will surface whatever order jj reports.
package jj

import (
	"context"
	"fmt"
	"strings"

	"github.com/entrhq/planlog/pkg/vcs"
)

// entryTemplate renders one entry per record: change ID, unit separator,
// full description, record separator.
const entryTemplate = `change_id ++ "\x1f" ++ description ++ "\x1e"`

// Log is a Jujutsu-backed vcs.Ops over one repository.
type Log struct {
	bin string
	dir string
}

var _ vcs.Ops = (*Log)(nil)

// New creates a jj adapter for the repository at dir. bin is the jj
// executable to invoke; empty means "jj" from PATH.
func New(bin, dir string) *Log {
	if bin == "" {
		bin = "jj"
	}
	return &Log{bin: bin, dir: dir}
}

// CurrentID implements vcs.Ops.
func (l *Log) CurrentID(ctx context.Context) (string, error) {
	out, _, err := l.run(ctx, "log", "--no-graph", "-r", "@", "-T", "change_id")
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(out)
	if id == "" {
		return "", fmt.Errorf("jj: no working copy change")
	}
	return id, nil
}

// Neighborhood implements vcs.Ops.
func (l *Log) Neighborhood(ctx context.Context) (vcs.Neighborhood, error) {
	var n vcs.Neighborhood

	current, err := l.logEntries(ctx, "@")
	if err != nil {
		return n, err
	}
	if len(current) != 1 {
		return n, fmt.Errorf("jj: expected one working copy change, got %d", len(current))
	}
	n.Current = current[0]

	// jj log reports newest-first; ancestors come out nearest-first and
	// are reversed into oldest-first.
	history, err := l.logEntries(ctx, "::@ ~ @")
	if err != nil {
		return n, err
	}
	for i := len(history) - 1; i >= 0; i-- {
		n.History = append(n.History, history[i])
	}

	future, err := l.logEntries(ctx, "@:: ~ @")
	if err != nil {
		return n, err
	}
	for i := len(future) - 1; i >= 0; i-- {
		n.Future = append(n.Future, future[i])
	}
	return n, nil
}

// logEntries runs jj log over a revset and parses the separated records.
func (l *Log) logEntries(ctx context.Context, revset string) ([]vcs.Entry, error) {
	out, _, err := l.run(ctx, "log", "--no-graph", "-r", revset, "-T", entryTemplate)
	if err != nil {
		return nil, err
	}

	var entries []vcs.Entry
	for _, record := range strings.Split(out, "\x1e") {
		if record == "" {
			continue
		}
		id, message, found := strings.Cut(record, "\x1f")
		if !found {
			return nil, fmt.Errorf("jj: malformed log record: %q", record)
		}
		entries = append(entries, vcs.Entry{ID: id, Message: message})
	}
	return entries, nil
}

// Description implements vcs.Ops.
func (l *Log) Description(ctx context.Context, id string) (string, error) {
	if id == "" {
		id = "@"
	}
	out, _, err := l.run(ctx, "log", "--no-graph", "-r", id, "-T", "description")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// SetDescription implements vcs.Ops.
func (l *Log) SetDescription(ctx context.Context, id, text string) error {
	if id == "" {
		id = "@"
	}
	_, _, err := l.run(ctx, "describe", "-r", id, "-m", text)
	return err
}

// IsEmpty implements vcs.Ops.
func (l *Log) IsEmpty(ctx context.Context, id string) (bool, error) {
	if id == "" {
		id = "@"
	}
	out, _, err := l.run(ctx, "log", "--no-graph", "-r", id,
		"-T", `if(empty, "true", "false")`)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) == "true", nil
}

// CreateEntry implements vcs.Ops.
func (l *Log) CreateEntry(ctx context.Context, opts vcs.CreateOptions) (string, error) {
	args := []string{"new"}
	switch {
	case opts.After != "" && opts.Before != "":
		return "", fmt.Errorf("jj: createEntry takes either after or before, not both")
	case opts.After != "":
		args = append(args, "--insert-after", opts.After)
	case opts.Before != "":
		args = append(args, "--insert-before", opts.Before)
	default:
		return "", fmt.Errorf("jj: createEntry requires after or before")
	}
	if !opts.MoveToIt {
		args = append(args, "--no-edit")
	}

	stdout, stderr, err := l.run(ctx, args...)
	if err != nil {
		return "", err
	}
	if opts.MoveToIt {
		return l.CurrentID(ctx)
	}
	return parseCreatedID(stdout + stderr)
}

// SlideEntry implements vcs.Ops.
func (l *Log) SlideEntry(ctx context.Context, opts vcs.SlideOptions) error {
	args := []string{"rebase", "-r", opts.ID}
	switch {
	case opts.After != "" && opts.Before != "":
		return fmt.Errorf("jj: slideEntry takes either after or before, not both")
	case opts.After != "":
		args = append(args, "--insert-after", opts.After)
	case opts.Before != "":
		args = append(args, "--insert-before", opts.Before)
	default:
		return fmt.Errorf("jj: slideEntry requires after or before")
	}
	_, _, err := l.run(ctx, args...)
	return err
}

// AbandonEntry implements vcs.Ops.
func (l *Log) AbandonEntry(ctx context.Context, id string) error {
	// jj happily abandons changes with content; the operation set promises
	// to delete only empty entries, so check first.
	empty, err := l.IsEmpty(ctx, id)
	if err != nil {
		return err
	}
	if !empty {
		return fmt.Errorf("jj: refusing to abandon non-empty change %s", id)
	}
	_, _, err = l.run(ctx, "abandon", "-r", id)
	return err
}

// MovePointer implements vcs.Ops.
func (l *Log) MovePointer(ctx context.Context, id string) error {
	_, _, err := l.run(ctx, "edit", id)
	return err
}
