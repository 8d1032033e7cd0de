package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/entrhq/planlog/pkg/plan"
	"github.com/entrhq/planlog/pkg/plan/codec"
	"github.com/entrhq/planlog/pkg/vcs"
)

// SaveMode selects how Save maps the target task list onto the log.
type SaveMode string

const (
	// SaveUpdate rewrites the plan surrounding the working pointer to
	// match the target list: kept tasks are reordered and rewritten in
	// place, keyless tasks are created, omitted tasks are deleted.
	SaveUpdate SaveMode = "update-existing"

	// SaveNewPlan appends a fresh plan, with a fresh tag, strictly after
	// whatever plan currently surrounds the working pointer.
	SaveNewPlan SaveMode = "new-plan"

	// SaveOverwrite overwrites the current entry's description with the
	// single target task. This is the one path that skips the emptiness
	// guard: it exists to retroactively document work already present.
	SaveOverwrite SaveMode = "overwrite-current"
)

// Save transforms the log so a subsequent Load reproduces the target task
// list exactly. The target must be non-empty in every mode.
func (s *Service) Save(ctx context.Context, target []plan.Task, mode SaveMode) error {
	if len(target) == 0 {
		return &plan.StructureError{Kind: plan.StructureEmptyTaskList,
			Detail: "a plan is never empty; drop it instead of saving an empty one"}
	}
	switch mode {
	case SaveOverwrite:
		return s.overwriteCurrent(ctx, target)
	case SaveNewPlan:
		return s.saveNewPlan(ctx, target)
	case SaveUpdate:
		return s.updatePlan(ctx, target)
	default:
		return fmt.Errorf("store: unknown save mode %q", mode)
	}
}

func (s *Service) overwriteCurrent(ctx context.Context, target []plan.Task) error {
	if len(target) != 1 {
		return &plan.StructureError{Kind: plan.StructureSingleTask,
			Detail: fmt.Sprintf("overwrite-current documents exactly one entry, got %d tasks", len(target))}
	}
	desc, err := codec.EncodeTask(target[0])
	if err != nil {
		return err
	}
	if err := s.ops.SetDescription(ctx, "", desc); err != nil {
		return vcs.WrapOp("setDescription", err)
	}
	s.infof("save: overwrote current entry")
	return nil
}

func (s *Service) saveNewPlan(ctx context.Context, target []plan.Task) error {
	tag, err := plan.NewTag()
	if err != nil {
		return err
	}

	// Encode everything up front so malformed content is caught before
	// the first mutating call.
	encoded := make([]string, len(target))
	for i, t := range target {
		t.Tag = tag
		t.Key = ""
		enc, err := codec.EncodeTask(t)
		if err != nil {
			return err
		}
		encoded[i] = enc
	}

	anchor, err := s.newPlanAnchor(ctx)
	if err != nil {
		return err
	}

	ids := make([]string, len(target))
	prev := anchor
	for i := range target {
		id, err := s.ops.CreateEntry(ctx, vcs.CreateOptions{After: prev})
		if err != nil {
			return vcs.WrapOp("createEntry", err)
		}
		if err := s.ops.SetDescription(ctx, id, encoded[i]); err != nil {
			return vcs.WrapOp("setDescription", err)
		}
		ids[i] = id
		prev = id
	}

	// Completion-aware positioning happens only on creation: move to the
	// first incomplete task, or stay put when every task is complete.
	for i, t := range target {
		if !t.Completed {
			if err := s.ops.MovePointer(ctx, ids[i]); err != nil {
				return vcs.WrapOp("movePointer", err)
			}
			break
		}
	}

	s.infof("save: created plan %s with %d tasks", tag, len(target))
	return nil
}

// newPlanAnchor returns the entry the new plan's first task is appended
// after: the last entry of the plan currently surrounding the working
// pointer, so the new plan never interleaves with it, or the current entry
// when no plan surrounds the pointer.
func (s *Service) newPlanAnchor(ctx context.Context) (string, error) {
	p, err := s.Load(ctx)
	if err == nil {
		return p.Tasks[len(p.Tasks)-1].Key, nil
	}
	var oe *vcs.OpError
	if errors.As(err, &oe) {
		return "", err
	}
	// The pointer is not inside a plan; anchor on the current entry.
	id, err := s.ops.CurrentID(ctx)
	if err != nil {
		return "", vcs.WrapOp("currentId", err)
	}
	return id, nil
}

func (s *Service) updatePlan(ctx context.Context, target []plan.Task) (err error) {
	p, err := s.Load(ctx)
	if err != nil {
		return err
	}

	// The pointer's pre-mutation position decides whether it needs to be
	// reassigned after the rewrite.
	origin, err := s.ops.CurrentID(ctx)
	if err != nil {
		return vcs.WrapOp("currentId", err)
	}

	// Pre-flight checks. Nothing below mutates until all of them pass.
	targetKeys := make(map[string]bool, len(target))
	var unknown []string
	for _, t := range target {
		if t.Key == "" {
			continue
		}
		if p.TaskByKey(t.Key) == nil || targetKeys[t.Key] {
			// A duplicate key would alias one entry into two target
			// slots; treat it like any other bad reference.
			unknown = append(unknown, t.Key)
			continue
		}
		targetKeys[t.Key] = true
	}

	removed := make(map[string]bool)
	var dirty []string
	for _, t := range p.Tasks {
		if targetKeys[t.Key] {
			continue
		}
		removed[t.Key] = true
		empty, err := s.ops.IsEmpty(ctx, t.Key)
		if err != nil {
			return vcs.WrapOp("isEmpty", err)
		}
		if !empty {
			dirty = append(dirty, t.Key)
		}
	}
	if len(dirty) > 0 {
		return &plan.SafetyError{Keys: dirty}
	}
	if len(unknown) > 0 {
		return &plan.InvocationError{Keys: unknown}
	}

	encoded := make([]string, len(target))
	for i, t := range target {
		t.Tag = p.Tag
		enc, err := codec.EncodeTask(t)
		if err != nil {
			return err
		}
		encoded[i] = enc
	}

	// Bracket the existing run with two throwaway anchors. The interval
	// between them starts out empty and disjoint from untouched history;
	// each target task is placed into it in order. The anchors are owned
	// for the whole rewrite and cleaned up on every exit path.
	head, err := s.ops.CreateEntry(ctx, vcs.CreateOptions{Before: p.Tasks[0].Key})
	if err != nil {
		return vcs.WrapOp("createEntry", err)
	}
	defer func() {
		if aerr := s.ops.AbandonEntry(ctx, head); aerr != nil && err == nil {
			err = vcs.WrapOp("abandonEntry", aerr)
		}
	}()

	tail, err := s.ops.CreateEntry(ctx, vcs.CreateOptions{After: head})
	if err != nil {
		return vcs.WrapOp("createEntry", err)
	}
	defer func() {
		if aerr := s.ops.AbandonEntry(ctx, tail); aerr != nil && err == nil {
			err = vcs.WrapOp("abandonEntry", aerr)
		}
	}()

	ids := make([]string, len(target))
	active := head
	for i, t := range target {
		if t.Key != "" {
			// Sliding preserves the entry's identifier, which is what
			// keeps an untouched working pointer valid.
			if err := s.ops.SlideEntry(ctx, vcs.SlideOptions{ID: t.Key, After: active}); err != nil {
				return vcs.WrapOp("slideEntry", err)
			}
			ids[i] = t.Key
		} else {
			id, err := s.ops.CreateEntry(ctx, vcs.CreateOptions{After: active})
			if err != nil {
				return vcs.WrapOp("createEntry", err)
			}
			ids[i] = id
		}
		if err := s.ops.SetDescription(ctx, ids[i], encoded[i]); err != nil {
			return vcs.WrapOp("setDescription", err)
		}
		active = ids[i]
	}

	// Reassign the pointer only when the entry it referenced was removed:
	// first incomplete survivor, else the first survivor.
	if removed[origin] {
		dest := ids[0]
		for i, t := range target {
			if !t.Completed {
				dest = ids[i]
				break
			}
		}
		if err := s.ops.MovePointer(ctx, dest); err != nil {
			return vcs.WrapOp("movePointer", err)
		}
	}

	// Removed entries were proven empty before mutation began. Newest
	// first, as in Drop.
	for i := len(p.Tasks) - 1; i >= 0; i-- {
		key := p.Tasks[i].Key
		if !removed[key] {
			continue
		}
		if err := s.ops.AbandonEntry(ctx, key); err != nil {
			return vcs.WrapOp("abandonEntry", err)
		}
	}

	s.infof("save: rewrote plan %s to %d tasks (%d removed)", p.Tag, len(target), len(removed))
	return nil
}
