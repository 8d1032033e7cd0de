package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/planlog/pkg/plan"
	"github.com/entrhq/planlog/pkg/vcs/memlog"
)

// seedPlan creates a plan through the saver itself and returns the loaded
// result, so every test starts from a state the engine actually produces.
func seedPlan(t *testing.T, titles ...string) (*memlog.Log, *Service, *plan.Plan) {
	t.Helper()
	l := memlog.New()
	svc := NewService(l, nil)

	target := make([]plan.Task, len(titles))
	for i, title := range titles {
		target[i] = plan.Task{Type: plan.TypeFeat, Title: title}
	}
	require.NoError(t, svc.Save(context.Background(), target, SaveNewPlan))

	p, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, p.Tasks, len(titles))
	return l, svc, p
}

func TestSaveEmptyTargetRejected(t *testing.T) {
	l := memlog.New()
	svc := NewService(l, nil)

	for _, mode := range []SaveMode{SaveUpdate, SaveNewPlan, SaveOverwrite} {
		err := svc.Save(context.Background(), nil, mode)
		var serr *plan.StructureError
		require.ErrorAs(t, err, &serr, "mode %s", mode)
		assert.Equal(t, plan.StructureEmptyTaskList, serr.Kind)
	}
	assert.Equal(t, 1, l.Len(), "no mutation on a rejected save")
}

func TestSaveNewPlanRoundTrip(t *testing.T) {
	l := memlog.New()
	svc := NewService(l, nil)
	ctx := context.Background()

	target := []plan.Task{
		{Type: plan.TypeChore, Title: "already done", Completed: true},
		{Type: plan.TypeFeat, Scope: "ui", Title: "second task",
			Intent:      "the reason",
			Objectives:  []string{"one", "two"},
			Constraints: []string{"keep it small"}},
		{Type: plan.TypeFix, Title: "third task"},
	}
	require.NoError(t, svc.Save(ctx, target, SaveNewPlan))

	// The pointer lands on the first incomplete task, which puts a
	// subsequent load inside the new plan.
	p, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, p.Tasks, 3)
	assert.True(t, plan.ValidTag(p.Tag))

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.Tasks[1].Key, cur, "pointer should be on the first incomplete task")

	for i, got := range p.Tasks {
		want := target[i]
		assert.Equal(t, want.Type, got.Type)
		assert.Equal(t, want.Scope, got.Scope)
		assert.Equal(t, want.Title, got.Title)
		assert.Equal(t, want.Intent, got.Intent)
		assert.Equal(t, want.Objectives, got.Objectives)
		assert.Equal(t, want.Constraints, got.Constraints)
		assert.Equal(t, want.Completed, got.Completed)
		assert.Equal(t, p.Tag, got.Tag)
		assert.NotEmpty(t, got.Key)
	}
}

func TestSaveNewPlanAllCompleteLeavesPointer(t *testing.T) {
	l := memlog.New()
	svc := NewService(l, nil)
	ctx := context.Background()

	before, err := l.CurrentID(ctx)
	require.NoError(t, err)

	target := []plan.Task{
		{Type: plan.TypeChore, Title: "done already", Completed: true},
		{Type: plan.TypeChore, Title: "this one too", Completed: true},
	}
	require.NoError(t, svc.Save(ctx, target, SaveNewPlan))

	after, err := l.CurrentID(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 3, l.Len())
}

func TestSaveNewPlanDoesNotInterleave(t *testing.T) {
	l, svc, first := seedPlan(t, "x one", "x two", "x three")
	ctx := context.Background()

	// Positioned inside plan X, create plan Y.
	require.NoError(t, svc.Goto(ctx, first.Tasks[1].Key))
	target := []plan.Task{
		{Type: plan.TypeFeat, Title: "y one"},
		{Type: plan.TypeFeat, Title: "y two"},
	}
	require.NoError(t, svc.Save(ctx, target, SaveNewPlan))

	// The pointer moved to plan Y's first task, so Y loads directly.
	y, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, y.Tasks, 2)
	assert.NotEqual(t, first.Tag, y.Tag)

	// Plan X must still be contiguous.
	require.NoError(t, svc.Goto(ctx, first.Tasks[0].Key))
	x, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Keys(), x.Keys())

	// And plan Y sits entirely after X's last entry in the log.
	position := make(map[string]int)
	for i, e := range l.Entries() {
		position[e.ID] = i
	}
	lastOfX := position[first.Tasks[2].Key]
	for _, key := range y.Keys() {
		assert.Greater(t, position[key], lastOfX)
	}
}

func TestUpdateReorderPreservesPointer(t *testing.T) {
	_, svc, p := seedPlan(t, "one", "two", "three")
	ctx := context.Background()

	require.NoError(t, svc.Goto(ctx, p.Tasks[1].Key))

	target := []plan.Task{p.Tasks[2], p.Tasks[0], p.Tasks[1]}
	require.NoError(t, svc.Save(ctx, target, SaveUpdate))

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.Tasks[1].Key, cur, "reordering must not move the pointer")

	reloaded, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{p.Tasks[2].Key, p.Tasks[0].Key, p.Tasks[1].Key}, reloaded.Keys())
	assert.Equal(t, p.Tag, reloaded.Tag)
}

func TestUpdateRemovalRepositionsPointer(t *testing.T) {
	_, svc, p := seedPlan(t, "one", "two", "three")
	ctx := context.Background()

	require.NoError(t, svc.Goto(ctx, p.Tasks[1].Key))

	first := p.Tasks[0]
	first.Completed = true
	third := p.Tasks[2]
	third.Completed = false

	require.NoError(t, svc.Save(ctx, []plan.Task{first, third}, SaveUpdate))

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, third.Key, cur, "pointer must land on the first incomplete survivor")

	reloaded, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{first.Key, third.Key}, reloaded.Keys())
}

func TestUpdateSafetyGuard(t *testing.T) {
	l, svc, p := seedPlan(t, "keep", "has real changes")
	ctx := context.Background()

	require.NoError(t, l.SetDirty(p.Tasks[1].Key, true))
	entriesBefore := l.Entries()

	err := svc.Save(ctx, []plan.Task{p.Tasks[0]}, SaveUpdate)
	var serr *plan.SafetyError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, []string{p.Tasks[1].Key}, serr.Keys)

	assert.Equal(t, entriesBefore, l.Entries(), "a safety refusal must not touch the log")
}

func TestUpdateInvalidReference(t *testing.T) {
	l, svc, p := seedPlan(t, "one", "two")
	ctx := context.Background()

	entriesBefore := l.Entries()

	ghost := p.Tasks[0]
	ghost.Key = "not-a-real-key"
	err := svc.Save(ctx, []plan.Task{ghost, p.Tasks[1]}, SaveUpdate)

	var ierr *plan.InvocationError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, []string{"not-a-real-key"}, ierr.Keys)
	assert.Equal(t, entriesBefore, l.Entries())
}

func TestUpdateDuplicateKeyRejected(t *testing.T) {
	_, svc, p := seedPlan(t, "one", "two")
	ctx := context.Background()

	err := svc.Save(ctx, []plan.Task{p.Tasks[0], p.Tasks[0], p.Tasks[1]}, SaveUpdate)
	var ierr *plan.InvocationError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, []string{p.Tasks[0].Key}, ierr.Keys)
}

func TestUpdateAddsAndRewrites(t *testing.T) {
	l, svc, p := seedPlan(t, "one", "two")
	ctx := context.Background()

	edited := p.Tasks[0]
	edited.Title = "one, retitled"
	edited.Intent = "because reasons"
	added := plan.Task{Type: plan.TypeDocs, Title: "brand new task"}

	require.NoError(t, svc.Save(ctx, []plan.Task{edited, added, p.Tasks[1]}, SaveUpdate))

	reloaded, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded.Tasks, 3)
	assert.Equal(t, "one, retitled", reloaded.Tasks[0].Title)
	assert.Equal(t, "because reasons", reloaded.Tasks[0].Intent)
	assert.Equal(t, p.Tasks[0].Key, reloaded.Tasks[0].Key, "kept tasks keep their identity")
	assert.Equal(t, "brand new task", reloaded.Tasks[1].Title)
	assert.NotEmpty(t, reloaded.Tasks[1].Key)
	assert.Equal(t, p.Tag, reloaded.Tasks[1].Tag, "new tasks join the plan's tag")

	// Anchors are gone: root + 3 plan entries.
	assert.Equal(t, 4, l.Len())
}

func TestOverwriteCurrent(t *testing.T) {
	l := memlog.New()
	svc := NewService(l, nil)
	ctx := context.Background()

	// The current entry has junk content and real file changes; overwrite
	// is the one path that does not care.
	id, err := l.CurrentID(ctx)
	require.NoError(t, err)
	require.NoError(t, l.SetDescription(ctx, id, "checkpoint wip"))
	require.NoError(t, l.SetDirty(id, true))

	task := plan.Task{Type: plan.TypeFix, Tag: "ab12", Title: "document what happened",
		Intent: "retroactive notes"}
	require.NoError(t, svc.Save(ctx, []plan.Task{task}, SaveOverwrite))

	desc, err := l.Description(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "fix(:ab12):* document what happened\n\nretroactive notes", desc)
}

func TestOverwriteCurrentSingleTaskOnly(t *testing.T) {
	svc := NewService(memlog.New(), nil)

	tasks := []plan.Task{
		{Type: plan.TypeFix, Tag: "ab12", Title: "one"},
		{Type: plan.TypeFix, Tag: "ab12", Title: "two"},
	}
	err := svc.Save(context.Background(), tasks, SaveOverwrite)
	var serr *plan.StructureError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, plan.StructureSingleTask, serr.Kind)
}

func TestDrop(t *testing.T) {
	l, svc, _ := seedPlan(t, "one", "two", "three")
	ctx := context.Background()

	require.NoError(t, svc.Drop(ctx))
	assert.Equal(t, 1, l.Len(), "only the root entry survives")
}

func TestDropRefusesDirtyEntries(t *testing.T) {
	l, svc, p := seedPlan(t, "one", "two")
	ctx := context.Background()

	require.NoError(t, l.SetDirty(p.Tasks[0].Key, true))
	entriesBefore := l.Entries()

	err := svc.Drop(ctx)
	var serr *plan.SafetyError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, []string{p.Tasks[0].Key}, serr.Keys)
	assert.Equal(t, entriesBefore, l.Entries())
}

func TestGoto(t *testing.T) {
	_, svc, p := seedPlan(t, "one", "two")
	ctx := context.Background()

	require.NoError(t, svc.Goto(ctx, p.Tasks[0].Key))
	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.Tasks[0].Key, cur)

	err = svc.Goto(ctx, "elsewhere")
	var ierr *plan.InvocationError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, []string{"elsewhere"}, ierr.Keys)

	cur, err = svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.Tasks[0].Key, cur, "failed goto must not move the pointer")
}
