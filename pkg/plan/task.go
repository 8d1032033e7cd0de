// Package plan defines the task and plan data model planlog persists in
// the backing log, together with the error taxonomy shared by the codec
// and the store.
package plan

import (
	"fmt"
	"regexp"
	"strings"
)

// TaskType classifies a task, conventional-commit style. The set is closed;
// anything outside it fails header decoding.
type TaskType string

const (
	TypeFeat     TaskType = "feat"
	TypeFix      TaskType = "fix"
	TypeRefactor TaskType = "refactor"
	TypeBuild    TaskType = "build"
	TypeChore    TaskType = "chore"
	TypeDocs     TaskType = "docs"
	TypeLint     TaskType = "lint"
	TypeInfra    TaskType = "infra"
	TypeSpec     TaskType = "spec"
)

// Types lists every valid task type in a stable order.
var Types = []TaskType{
	TypeFeat, TypeFix, TypeRefactor, TypeBuild, TypeChore,
	TypeDocs, TypeLint, TypeInfra, TypeSpec,
}

// MaxTitleLength is the maximum number of characters allowed in a task
// title after trimming.
const MaxTitleLength = 120

// TagLength is the exact length of a plan tag.
const TagLength = 4

var (
	scopePattern = regexp.MustCompile(`^[a-z][a-z0-9/.\-]*$`)
	tagPattern   = regexp.MustCompile(`^[a-z0-9]{4}$`)
)

// Task is the decoded content of one log entry.
type Task struct {
	// Key is the backing log's stable identifier for the entry carrying
	// this task. Empty for a task that has not been created yet.
	Key string

	// Tag groups the task into a plan. Every task of a plan shares it.
	Tag string

	Type  TaskType
	Scope string // optional; empty means no scope
	Title string

	Intent      string
	Objectives  []string
	Constraints []string

	Completed bool
}

// ValidType reports whether t is one of the closed task type set.
func ValidType(t TaskType) bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

// ValidTag reports whether tag is exactly four lowercase alphanumerics.
func ValidTag(tag string) bool {
	return tagPattern.MatchString(tag)
}

// ValidScope reports whether scope matches the scope pattern. The empty
// string is not a valid scope; absence is represented by not having one.
func ValidScope(scope string) bool {
	return scopePattern.MatchString(scope)
}

// ValidateTitle checks a title against the header grammar's constraints.
// The title is trimmed before checking; callers encode the trimmed form.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" || !isLowerOrDigit(trimmed[0]) {
		return &ParseError{Kind: ParseInvalidHeader,
			Detail: fmt.Sprintf("title must start with a lowercase letter or digit: %q", trimmed)}
	}
	if len(trimmed) > MaxTitleLength {
		return &ParseError{Kind: ParseTitleTooLong,
			Detail: fmt.Sprintf("title is %d characters, maximum is %d", len(trimmed), MaxTitleLength)}
	}
	return nil
}

// Validate checks every encodable field of the task. It does not check Key:
// key assignment belongs to the backing log, not the caller.
func (t *Task) Validate() error {
	if !ValidType(t.Type) {
		return &ParseError{Kind: ParseInvalidType,
			Detail: fmt.Sprintf("unknown task type %q", t.Type)}
	}
	if !ValidTag(t.Tag) {
		return &ParseError{Kind: ParseInvalidHeader,
			Detail: fmt.Sprintf("tag must be %d lowercase alphanumerics, got %q", TagLength, t.Tag)}
	}
	if t.Scope != "" && !ValidScope(t.Scope) {
		return &ParseError{Kind: ParseInvalidHeader,
			Detail: fmt.Sprintf("invalid scope %q", t.Scope)}
	}
	return ValidateTitle(t.Title)
}

func isLowerOrDigit(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
