// Package ui renders plans for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gobwas/glob"

	"github.com/entrhq/planlog/pkg/plan"
)

// Color palette, shared by the static renderer and the picker.
var (
	accentColor  = lipgloss.Color("#FFB3BA")
	doneColor    = lipgloss.Color("#A8E6CF")
	pendingColor = lipgloss.Color("#F9FAFB")
	dimColor     = lipgloss.Color("#6B7280")
)

// RenderOptions controls plan rendering.
type RenderOptions struct {
	// ScopeGlob filters tasks by scope when non-empty, e.g. "ui/*".
	// Scopeless tasks never match a glob.
	ScopeGlob string

	// CurrentKey marks the task the working pointer references.
	CurrentKey string

	// Color toggles styling; when false the output is plain text.
	Color bool
}

type renderStyles struct {
	header  lipgloss.Style
	done    lipgloss.Style
	pending lipgloss.Style
	dim     lipgloss.Style
}

func newRenderStyles(color bool) renderStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return renderStyles{header: plain, done: plain, pending: plain, dim: plain}
	}
	return renderStyles{
		header:  lipgloss.NewStyle().Foreground(accentColor).Bold(true),
		done:    lipgloss.NewStyle().Foreground(doneColor),
		pending: lipgloss.NewStyle().Foreground(pendingColor),
		dim:     lipgloss.NewStyle().Foreground(dimColor),
	}
}

// RenderPlan renders a plan as a task list, one line per task plus the
// dimmed intent first line when present.
func RenderPlan(p *plan.Plan, opts RenderOptions) (string, error) {
	var scopeGlob glob.Glob
	if opts.ScopeGlob != "" {
		g, err := glob.Compile(opts.ScopeGlob, '/')
		if err != nil {
			return "", fmt.Errorf("ui: invalid scope glob %q: %w", opts.ScopeGlob, err)
		}
		scopeGlob = g
	}

	styles := newRenderStyles(opts.Color)

	var b strings.Builder
	b.WriteString(styles.header.Render(fmt.Sprintf("plan %s", p.Tag)))
	b.WriteString("\n")

	shown := 0
	for _, t := range p.Tasks {
		if scopeGlob != nil && (t.Scope == "" || !scopeGlob.Match(t.Scope)) {
			continue
		}
		shown++

		pointer := " "
		if t.Key == opts.CurrentKey {
			pointer = ">"
		}
		mark := "[x]"
		style := styles.done
		if !t.Completed {
			mark = "[ ]"
			style = styles.pending
		}

		b.WriteString(fmt.Sprintf("%s %s %s\n",
			pointer, mark, style.Render(TaskLabel(t))))
		if first := firstLine(t.Intent); first != "" {
			b.WriteString(styles.dim.Render("      "+first) + "\n")
		}
	}

	if shown == 0 {
		b.WriteString(styles.dim.Render("  (no tasks match)") + "\n")
	}
	return b.String(), nil
}

// TaskLabel is the one-line human label for a task: type, scope and title,
// without the tag and marker machinery of the wire header.
func TaskLabel(t plan.Task) string {
	if t.Scope != "" {
		return fmt.Sprintf("%s(%s): %s", t.Type, t.Scope, t.Title)
	}
	return fmt.Sprintf("%s: %s", t.Type, t.Title)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
