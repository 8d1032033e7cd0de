package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entrhq/planlog/pkg/plan/planfile"
	"github.com/entrhq/planlog/pkg/plan/store"
)

var applyCmd = &cobra.Command{
	Use:   "apply <plan.yaml>",
	Short: "Rewrite the current plan to match a plan file",
	Long: `Rewrites the plan surrounding the working copy to match the file:
tasks keeping their key are reordered and rewritten in place, keyless tasks
are created, and tasks omitted from the file are deleted. Deleting is
refused while an entry still carries file changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runE(runApply),
}

func runApply(cmd *cobra.Command, args []string) error {
	f, err := planfile.Read(args[0])
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.svc.Save(cmd.Context(), f.TaskList(), store.SaveUpdate); err != nil {
		return err
	}
	fmt.Printf("plan rewritten to %d tasks\n", len(f.Tasks))
	return nil
}
