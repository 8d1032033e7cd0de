// Package codec encodes tasks to and from log entry descriptions. The
// first line of a description is the header (type, scope, tag, completion
// marker, title); the remainder is the body (intent plus optional
// objectives and constraints sections). Decoding is strict: a description
// either decodes completely or fails with a kind-tagged plan.ParseError.
package codec

import (
	"fmt"
	"strings"

	"github.com/entrhq/planlog/pkg/plan"
)

// PendingMarker flags an incomplete task in the header. Its absence means
// the task is complete. The character can never collide with a title,
// which must start with a lowercase letter or digit.
const PendingMarker = "*"

type headerParts struct {
	taskType string
	scope    string
	tag      string
	pending  bool
	title    string
}

// matchHeader splits a header line into its raw parts, or reports false
// when the line does not have the header shape at all. The type segment is
// matched loosely so an unknown type can be reported distinctly from a
// malformed header. Shape: type(scope?:tag):marker? title
func matchHeader(line string) (headerParts, bool) {
	var p headerParts

	open := strings.IndexByte(line, '(')
	if open <= 0 {
		return p, false
	}
	p.taskType = line[:open]
	if !isAlpha(p.taskType) {
		return p, false
	}

	closing := strings.IndexByte(line[open:], ')')
	if closing < 0 {
		return p, false
	}
	closing += open
	inner := line[open+1 : closing]

	colon := strings.LastIndexByte(inner, ':')
	if colon < 0 {
		return p, false
	}
	p.scope = inner[:colon]
	p.tag = inner[colon+1:]

	rest := line[closing+1:]
	if !strings.HasPrefix(rest, ":") {
		return p, false
	}
	rest = rest[1:]
	if strings.HasPrefix(rest, PendingMarker) {
		p.pending = true
		rest = rest[len(PendingMarker):]
	}
	if !strings.HasPrefix(rest, " ") {
		return p, false
	}
	p.title = rest[1:]
	return p, true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// DecodeHeader parses a header line into the task fields it carries. The
// returned task has no key, intent, objectives or constraints.
func DecodeHeader(line string) (plan.Task, error) {
	var t plan.Task

	if strings.ContainsRune(line, '\n') {
		return t, &plan.ParseError{Kind: plan.ParseInvalidHeader,
			Detail: "header must be a single line"}
	}

	parts, ok := matchHeader(line)
	if !ok {
		return t, &plan.ParseError{Kind: plan.ParseInvalidHeader,
			Detail: fmt.Sprintf("malformed header: %q", line)}
	}

	if !plan.ValidType(plan.TaskType(parts.taskType)) {
		return t, &plan.ParseError{Kind: plan.ParseInvalidType,
			Detail: fmt.Sprintf("unknown task type %q", parts.taskType)}
	}
	if !plan.ValidTag(parts.tag) {
		// Deliberately the general kind: a bad tag is indistinguishable
		// from any other grammar mismatch.
		return t, &plan.ParseError{Kind: plan.ParseInvalidHeader,
			Detail: fmt.Sprintf("malformed tag %q", parts.tag)}
	}
	if parts.scope != "" && !plan.ValidScope(parts.scope) {
		return t, &plan.ParseError{Kind: plan.ParseInvalidHeader,
			Detail: fmt.Sprintf("malformed scope %q", parts.scope)}
	}

	title := strings.TrimSpace(parts.title)
	if err := plan.ValidateTitle(title); err != nil {
		return t, err
	}

	t.Type = plan.TaskType(parts.taskType)
	t.Scope = parts.scope
	t.Tag = parts.tag
	t.Completed = !parts.pending
	t.Title = title
	return t, nil
}

// EncodeHeader renders the task's header line. It validates the encodable
// fields first so a decode of the result always reproduces the task.
func EncodeHeader(t plan.Task) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	marker := ""
	if !t.Completed {
		marker = PendingMarker
	}
	return fmt.Sprintf("%s(%s:%s):%s %s",
		t.Type, t.Scope, t.Tag, marker, strings.TrimSpace(t.Title)), nil
}
