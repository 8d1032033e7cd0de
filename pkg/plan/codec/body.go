package codec

import (
	"fmt"
	"strings"

	"github.com/entrhq/planlog/pkg/plan"
)

// Section markers and the bullet prefix of the body grammar. Marker lines
// must match exactly; an indented or suffixed marker is ordinary intent or
// bullet text.
const (
	ObjectivesMarker  = "## Objectives"
	ConstraintsMarker = "## Constraints"
	BulletPrefix      = "- "
)

// Body is the decoded free-text portion of a task: the rationale plus the
// optional bulleted sections.
type Body struct {
	Intent      string
	Objectives  []string
	Constraints []string
}

type bodyState int

const (
	stateIntent bodyState = iota
	stateObjective
	stateConstraint
)

// DecodeBody parses everything after the header line. Missing sections
// decode to empty lists. A single malformed bullet fails the whole decode;
// nothing is skipped.
func DecodeBody(text string) (Body, error) {
	var (
		intentLines     []string
		objectiveLines  []string
		constraintLines []string
	)

	state := stateIntent
	for _, line := range strings.Split(text, "\n") {
		switch line {
		case ObjectivesMarker:
			state = stateObjective
			continue
		case ConstraintsMarker:
			state = stateConstraint
			continue
		}
		switch state {
		case stateIntent:
			intentLines = append(intentLines, line)
		case stateObjective:
			objectiveLines = append(objectiveLines, line)
		case stateConstraint:
			constraintLines = append(constraintLines, line)
		}
	}

	objectives, err := decodeBullets(objectiveLines, plan.ParseInvalidObjective)
	if err != nil {
		return Body{}, err
	}
	constraints, err := decodeBullets(constraintLines, plan.ParseInvalidConstraint)
	if err != nil {
		return Body{}, err
	}

	return Body{
		Intent:      strings.TrimSpace(strings.Join(intentLines, "\n")),
		Objectives:  objectives,
		Constraints: constraints,
	}, nil
}

// decodeBullets validates and strips the bullet prefix from a section's
// accumulated lines. Blank lines are discarded; anything else must be a
// well-formed bullet.
func decodeBullets(lines []string, kind plan.ParseKind) ([]string, error) {
	var items []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, BulletPrefix) {
			return nil, &plan.ParseError{Kind: kind,
				Detail: fmt.Sprintf("line is not a bullet: %q", line)}
		}
		item := strings.TrimSpace(line[len(BulletPrefix):])
		if item == "" {
			return nil, &plan.ParseError{Kind: kind,
				Detail: fmt.Sprintf("empty bullet: %q", line)}
		}
		items = append(items, item)
	}
	return items, nil
}

// EncodeBody renders the body text: intent first, then the constraints
// section, then the objectives section, blocks separated by one blank line,
// the whole result trimmed. Empty sections are omitted entirely.
func EncodeBody(b Body) (string, error) {
	var blocks []string

	if intent := strings.TrimSpace(b.Intent); intent != "" {
		blocks = append(blocks, intent)
	}

	constraints, err := encodeBullets(ConstraintsMarker, b.Constraints, plan.ParseInvalidConstraint)
	if err != nil {
		return "", err
	}
	if constraints != "" {
		blocks = append(blocks, constraints)
	}

	objectives, err := encodeBullets(ObjectivesMarker, b.Objectives, plan.ParseInvalidObjective)
	if err != nil {
		return "", err
	}
	if objectives != "" {
		blocks = append(blocks, objectives)
	}

	return strings.Join(blocks, "\n\n"), nil
}

func encodeBullets(marker string, items []string, kind plan.ParseKind) (string, error) {
	if len(items) == 0 {
		return "", nil
	}
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, marker)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || strings.ContainsRune(item, '\n') {
			return "", &plan.ParseError{Kind: kind,
				Detail: fmt.Sprintf("bullet items must be non-empty single lines: %q", item)}
		}
		lines = append(lines, BulletPrefix+item)
	}
	return strings.Join(lines, "\n"), nil
}
