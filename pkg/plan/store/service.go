package store

import (
	"context"

	"github.com/entrhq/planlog/pkg/logging"
	"github.com/entrhq/planlog/pkg/plan"
	"github.com/entrhq/planlog/pkg/vcs"
)

// Service exposes plan persistence over one repository's backing log.
// The zero value is not usable; construct with NewService.
type Service struct {
	ops vcs.Ops
	log *logging.Logger
}

// NewService creates a store service over the given backing log. The
// logger may be nil, in which case the service is silent.
func NewService(ops vcs.Ops, log *logging.Logger) *Service {
	return &Service{ops: ops, log: log}
}

// Current returns the identifier of the entry the working pointer
// references.
func (s *Service) Current(ctx context.Context) (string, error) {
	id, err := s.ops.CurrentID(ctx)
	if err != nil {
		return "", vcs.WrapOp("currentId", err)
	}
	return id, nil
}

// Goto moves the working pointer to the plan task with the given key.
// Referencing a key outside the loaded plan is an invocation error and
// moves nothing.
func (s *Service) Goto(ctx context.Context, key string) error {
	p, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if p.TaskByKey(key) == nil {
		return &plan.InvocationError{Keys: []string{key}}
	}
	if err := s.ops.MovePointer(ctx, key); err != nil {
		return vcs.WrapOp("movePointer", err)
	}
	s.debugf("goto: moved pointer to %s", key)
	return nil
}

// Drop deletes every entry of the current plan. All entries must be empty;
// otherwise a safety error is returned and nothing is deleted.
func (s *Service) Drop(ctx context.Context) error {
	p, err := s.Load(ctx)
	if err != nil {
		return err
	}

	var dirty []string
	for _, t := range p.Tasks {
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

	// Newest-first so relinking never has to reparent an entry that is
	// itself about to go away.
	for i := len(p.Tasks) - 1; i >= 0; i-- {
		if err := s.ops.AbandonEntry(ctx, p.Tasks[i].Key); err != nil {
			return vcs.WrapOp("abandonEntry", err)
		}
	}
	s.infof("drop: abandoned plan %s (%d tasks)", p.Tag, len(p.Tasks))
	return nil
}

func (s *Service) debugf(format string, v ...interface{}) {
	if s.log != nil {
		s.log.Debugf(format, v...)
	}
}

func (s *Service) infof(format string, v ...interface{}) {
	if s.log != nil {
		s.log.Infof(format, v...)
	}
}
