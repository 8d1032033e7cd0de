package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/entrhq/planlog/pkg/plan"
	"github.com/entrhq/planlog/pkg/vcs"
)

// runE adapts a command body so every error is rendered once, with the
// taxonomy-specific phrasing, before being handed back to cobra.
func runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err != nil {
			fmt.Fprintln(os.Stderr, renderError(err))
		}
		return err
	}
}

// renderError maps the error taxonomy to user-facing messages. Matching is
// exhaustive over the closed set; anything else is reported verbatim.
func renderError(err error) string {
	var (
		parseErr      *plan.ParseError
		structureErr  *plan.StructureError
		safetyErr     *plan.SafetyError
		invocationErr *plan.InvocationError
		opErr         *vcs.OpError
	)

	switch {
	case errors.As(err, &parseErr):
		return fmt.Sprintf("error: the plan could not be decoded (%s): %s",
			parseErr.Kind, parseErr.Detail)

	case errors.As(err, &structureErr):
		return fmt.Sprintf("error: %s", structureErr.Error())

	case errors.As(err, &safetyErr):
		return fmt.Sprintf("error: refusing to delete entries that carry file changes:\n  %s\nmove the changes elsewhere first, or keep the tasks in the plan",
			strings.Join(safetyErr.Keys, "\n  "))

	case errors.As(err, &invocationErr):
		return fmt.Sprintf("error: these task keys are not part of the current plan: %s",
			strings.Join(invocationErr.Keys, ", "))

	case errors.As(err, &opErr):
		// A failure after mutation began can leave a partially rewritten
		// plan; the log itself stays consistent, so say so.
		return fmt.Sprintf("error: backing log operation failed: %v\nthe repository may hold a partially rewritten plan; run 'planlog show' to inspect it", opErr)

	default:
		return fmt.Sprintf("error: %v", err)
	}
}
