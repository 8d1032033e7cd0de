package store

import (
	"context"
	"strings"

	"github.com/entrhq/planlog/pkg/plan"
	"github.com/entrhq/planlog/pkg/plan/codec"
	"github.com/entrhq/planlog/pkg/vcs"
)

// Load reconstructs the plan surrounding the working pointer. The current
// entry's header must decode (otherwise there is no plan here and its
// parse error is returned); neighbors bound the plan without failing it.
// Every member's body must decode or the whole load fails.
func (s *Service) Load(ctx context.Context) (*plan.Plan, error) {
	n, err := s.ops.Neighborhood(ctx)
	if err != nil {
		return nil, vcs.WrapOp("linearNeighborhood", err)
	}

	tag, run, err := collectRun(n)
	if err != nil {
		return nil, err
	}
	if len(run) == 0 {
		return nil, &plan.StructureError{Kind: plan.StructureEmptyPlan}
	}

	tasks := make([]plan.Task, 0, len(run))
	for _, e := range run {
		desc, err := s.ops.Description(ctx, e.ID)
		if err != nil {
			return nil, vcs.WrapOp("getDescription", err)
		}
		t, err := codec.DecodeTask(desc)
		if err != nil {
			// All-or-nothing: one undecodable member invalidates the plan.
			return nil, err
		}
		t.Key = e.ID
		tasks = append(tasks, t)
	}

	s.debugf("load: plan %s with %d tasks", tag, len(tasks))
	return &plan.Plan{Tag: tag, Tasks: tasks}, nil
}

// collectRun assembles the contiguous run of entries around the current
// one whose headers decode and share the current entry's tag. It is a pure
// function of the neighborhood: one take-while pass over history walking
// outward from the current entry, one over the future, concatenated in
// chronological order.
func collectRun(n vcs.Neighborhood) (string, []vcs.Entry, error) {
	current, err := codec.DecodeHeader(firstLine(n.Current.Message))
	if err != nil {
		return "", nil, err
	}
	tag := current.Tag

	var older []vcs.Entry
	for i := len(n.History) - 1; i >= 0; i-- {
		if !memberOf(tag, n.History[i]) {
			break
		}
		older = append(older, n.History[i])
	}
	reverseEntries(older)

	run := append(older, n.Current)
	for _, e := range n.Future {
		if !memberOf(tag, e) {
			break
		}
		run = append(run, e)
	}
	return tag, run, nil
}

// memberOf reports whether the entry's header decodes and carries the tag.
// A failure here bounds the run instead of failing the load.
func memberOf(tag string, e vcs.Entry) bool {
	t, err := codec.DecodeHeader(firstLine(e.Message))
	return err == nil && t.Tag == tag
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func reverseEntries(entries []vcs.Entry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
