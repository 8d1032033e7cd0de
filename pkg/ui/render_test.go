package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/planlog/pkg/plan"
)

func testPlan() *plan.Plan {
	return &plan.Plan{Tag: "ab12", Tasks: []plan.Task{
		{Key: "k1", Type: plan.TypeFeat, Scope: "ui/render", Title: "draw the list",
			Intent: "people read this\nsecond line", Completed: true},
		{Key: "k2", Type: plan.TypeFix, Scope: "core", Title: "stop the crash"},
		{Key: "k3", Type: plan.TypeDocs, Title: "scopeless task"},
	}}
}

func TestRenderPlanPlain(t *testing.T) {
	out, err := RenderPlan(testPlan(), RenderOptions{CurrentKey: "k2"})
	require.NoError(t, err)

	assert.Contains(t, out, "plan ab12")
	assert.Contains(t, out, "  [x] feat(ui/render): draw the list")
	assert.Contains(t, out, "> [ ] fix(core): stop the crash")
	assert.Contains(t, out, "  [ ] docs: scopeless task")

	// Only the intent's first line shows, dimmed under the task.
	assert.Contains(t, out, "      people read this")
	assert.NotContains(t, out, "second line")
}

func TestRenderPlanScopeGlob(t *testing.T) {
	out, err := RenderPlan(testPlan(), RenderOptions{ScopeGlob: "ui/*"})
	require.NoError(t, err)

	assert.Contains(t, out, "draw the list")
	assert.NotContains(t, out, "stop the crash")
	assert.NotContains(t, out, "scopeless task", "scopeless tasks never match a glob")
}

func TestRenderPlanNoMatches(t *testing.T) {
	out, err := RenderPlan(testPlan(), RenderOptions{ScopeGlob: "storage/*"})
	require.NoError(t, err)
	assert.Contains(t, out, "(no tasks match)")
}

func TestRenderPlanBadGlob(t *testing.T) {
	_, err := RenderPlan(testPlan(), RenderOptions{ScopeGlob: "ui/["})
	assert.Error(t, err)
}

func TestTaskLabel(t *testing.T) {
	withScope := plan.Task{Type: plan.TypeFeat, Scope: "ui", Title: "styled"}
	assert.Equal(t, "feat(ui): styled", TaskLabel(withScope))

	scopeless := plan.Task{Type: plan.TypeChore, Title: "tidy up"}
	assert.Equal(t, "chore: tidy up", TaskLabel(scopeless))
}
