package codec

import (
	"strings"

	"github.com/entrhq/planlog/pkg/plan"
)

// EncodeTask renders a task as a full entry description: the header line,
// then a blank line and the body when the body is non-empty.
func EncodeTask(t plan.Task) (string, error) {
	header, err := EncodeHeader(t)
	if err != nil {
		return "", err
	}
	body, err := EncodeBody(Body{
		Intent:      t.Intent,
		Objectives:  t.Objectives,
		Constraints: t.Constraints,
	})
	if err != nil {
		return "", err
	}
	if body == "" {
		return header, nil
	}
	return header + "\n\n" + body, nil
}

// DecodeTask parses a full entry description back into a task. The task's
// Key is not part of the description; callers fill it in from the entry.
func DecodeTask(description string) (plan.Task, error) {
	header := description
	rest := ""
	if i := strings.IndexByte(description, '\n'); i >= 0 {
		header = description[:i]
		rest = description[i+1:]
	}

	t, err := DecodeHeader(header)
	if err != nil {
		return plan.Task{}, err
	}
	body, err := DecodeBody(rest)
	if err != nil {
		return plan.Task{}, err
	}

	t.Intent = body.Intent
	t.Objectives = body.Objectives
	t.Constraints = body.Constraints
	return t, nil
}
