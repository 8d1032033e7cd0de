package memlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/planlog/pkg/vcs"
)

func TestNewLog(t *testing.T) {
	l := New()
	ctx := context.Background()

	require.Equal(t, 1, l.Len())

	id, err := l.CurrentID(ctx)
	require.NoError(t, err)

	empty, err := l.IsEmpty(ctx, id)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestAppendAndNeighborhood(t *testing.T) {
	l := New()
	ctx := context.Background()

	a := l.Append("a")
	b := l.Append("b")
	c := l.Append("c")

	require.NoError(t, l.MovePointer(ctx, b))

	n, err := l.Neighborhood(ctx)
	require.NoError(t, err)
	assert.Equal(t, b, n.Current.ID)
	assert.Equal(t, "b", n.Current.Message)
	require.Len(t, n.History, 2) // root + a
	assert.Equal(t, a, n.History[1].ID)
	require.Len(t, n.Future, 1)
	assert.Equal(t, c, n.Future[0].ID)
}

func TestDescriptions(t *testing.T) {
	l := New()
	ctx := context.Background()

	a := l.Append("original")
	require.NoError(t, l.SetDescription(ctx, a, "rewritten"))

	got, err := l.Description(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "rewritten", got)

	// Empty id resolves to the current entry.
	cur, err := l.Description(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "", cur)
}

func TestCreateEntryPositions(t *testing.T) {
	l := New()
	ctx := context.Background()

	a := l.Append("a")
	b := l.Append("b")

	mid, err := l.CreateEntry(ctx, vcs.CreateOptions{After: a})
	require.NoError(t, err)

	first, err := l.CreateEntry(ctx, vcs.CreateOptions{Before: a})
	require.NoError(t, err)

	// Expected order: root, first, a, mid, b.
	ids := entryIDs(l)
	require.Len(t, ids, 5)
	assert.Equal(t, []string{first, a, mid, b}, ids[1:])
}

func TestCreateEntryPointer(t *testing.T) {
	l := New()
	ctx := context.Background()
	a := l.Append("a")

	before, err := l.CurrentID(ctx)
	require.NoError(t, err)

	_, err = l.CreateEntry(ctx, vcs.CreateOptions{After: a})
	require.NoError(t, err)
	after, err := l.CurrentID(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "creation without moveToIt must not move the pointer")

	moved, err := l.CreateEntry(ctx, vcs.CreateOptions{After: a, MoveToIt: true})
	require.NoError(t, err)
	cur, err := l.CurrentID(ctx)
	require.NoError(t, err)
	assert.Equal(t, moved, cur)
}

func TestCreateEntryRejectsBadPositions(t *testing.T) {
	l := New()
	ctx := context.Background()
	a := l.Append("a")

	_, err := l.CreateEntry(ctx, vcs.CreateOptions{})
	assert.Error(t, err)

	_, err = l.CreateEntry(ctx, vcs.CreateOptions{After: a, Before: a})
	assert.Error(t, err)

	_, err = l.CreateEntry(ctx, vcs.CreateOptions{After: "missing"})
	assert.Error(t, err)
}

func TestSlideEntry(t *testing.T) {
	l := New()
	ctx := context.Background()

	a := l.Append("a")
	b := l.Append("b")
	c := l.Append("c")

	require.NoError(t, l.SlideEntry(ctx, vcs.SlideOptions{ID: c, After: a}))
	ids := entryIDs(l)
	assert.Equal(t, []string{a, c, b}, ids[1:])

	// Identity and content survive the slide.
	msg, err := l.Description(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "c", msg)

	err = l.SlideEntry(ctx, vcs.SlideOptions{ID: c, After: c})
	assert.Error(t, err)

	err = l.SlideEntry(ctx, vcs.SlideOptions{ID: c, After: "missing"})
	assert.Error(t, err)
	assert.Equal(t, []string{a, c, b}, entryIDs(l)[1:], "failed slide must not reorder")
}

func TestAbandonEntry(t *testing.T) {
	l := New()
	ctx := context.Background()

	a := l.Append("a")
	b := l.Append("b")

	require.NoError(t, l.SetDirty(b, true))
	err := l.AbandonEntry(ctx, b)
	assert.Error(t, err, "non-empty entries cannot be abandoned")

	require.NoError(t, l.SetDirty(b, false))
	require.NoError(t, l.AbandonEntry(ctx, b))
	assert.Equal(t, 2, l.Len())

	// Abandoning the pointed-at entry falls back to the older neighbor.
	require.NoError(t, l.MovePointer(ctx, a))
	require.NoError(t, l.AbandonEntry(ctx, a))
	cur, err := l.CurrentID(ctx)
	require.NoError(t, err)
	assert.Equal(t, entryIDs(l)[0], cur)
}

func entryIDs(l *Log) []string {
	entries := l.Entries()
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
