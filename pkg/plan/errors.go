package plan

import (
	"fmt"
	"strings"
)

// ParseKind identifies which part of the header/body grammar a decode
// violated.
type ParseKind string

const (
	// ParseInvalidType means the header named a type outside the closed set.
	ParseInvalidType ParseKind = "invalid-type"

	// ParseInvalidHeader is the general grammar mismatch, covering
	// malformed shape, bad tags, bad scopes and bad title starts alike.
	ParseInvalidHeader ParseKind = "invalid-header"

	// ParseTitleTooLong means the header parsed but the title exceeds the
	// length limit after trimming.
	ParseTitleTooLong ParseKind = "title-too-long"

	// ParseInvalidObjective means an objectives bullet was blank or did
	// not carry the bullet prefix.
	ParseInvalidObjective ParseKind = "invalid-objective-format"

	// ParseInvalidConstraint is the constraints-section counterpart.
	ParseInvalidConstraint ParseKind = "invalid-constraint-format"
)

// ParseError reports a header or body grammar violation. Decoding a plan is
// all-or-nothing, so a single ParseError invalidates the whole load.
type ParseError struct {
	Kind   ParseKind
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("plan: parse error (%s)", e.Kind)
	}
	return fmt.Sprintf("plan: parse error (%s): %s", e.Kind, e.Detail)
}

// Is matches any *ParseError, or one with the same kind when the target
// carries a kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

// StructureKind identifies an invariant violation in the plan structure
// itself rather than in any one entry's text.
type StructureKind string

const (
	// StructureEmptyTaskList means a save was requested with no tasks.
	StructureEmptyTaskList StructureKind = "empty-task-list"

	// StructureEmptyPlan means a scan produced no tasks. Defensive: the
	// current entry is always a member once its header decodes.
	StructureEmptyPlan StructureKind = "empty-plan"

	// StructureSingleTask means a mode that documents exactly one entry
	// was given more than one task.
	StructureSingleTask StructureKind = "single-task-mode"
)

// StructureError reports a plan-level invariant violation.
type StructureError struct {
	Kind   StructureKind
	Detail string
}

func (e *StructureError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("plan: structure error (%s)", e.Kind)
	}
	return fmt.Sprintf("plan: structure error (%s): %s", e.Kind, e.Detail)
}

func (e *StructureError) Is(target error) bool {
	t, ok := target.(*StructureError)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

// SafetyError is the refusal to perform a destructive action: one or more
// entries slated for removal carry real file changes. It is raised before
// any mutation is issued.
type SafetyError struct {
	Keys []string // the offending entry identifiers
}

func (e *SafetyError) Error() string {
	return fmt.Sprintf("plan: refusing to remove non-empty entries: %s",
		strings.Join(e.Keys, ", "))
}

// InvocationError means the caller referenced entry identifiers that are
// not part of the loaded plan. It is raised before any mutation is issued.
type InvocationError struct {
	Keys []string // the unknown identifiers
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("plan: unknown task keys: %s", strings.Join(e.Keys, ", "))
}
