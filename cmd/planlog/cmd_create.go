package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entrhq/planlog/pkg/plan/planfile"
	"github.com/entrhq/planlog/pkg/plan/store"
)

var createCmd = &cobra.Command{
	Use:   "create <plan.yaml>",
	Short: "Create a new plan from a plan file",
	Long:  "Creates a fresh plan with a new tag, appended strictly after any plan the working copy currently sits in. Keys and tags in the file are ignored; the new plan owns both.",
	Args:  cobra.ExactArgs(1),
	RunE:  runE(runCreate),
}

func runCreate(cmd *cobra.Command, args []string) error {
	f, err := planfile.Read(args[0])
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.svc.Save(cmd.Context(), f.TaskList(), store.SaveNewPlan); err != nil {
		return err
	}
	fmt.Printf("created plan with %d tasks\n", len(f.Tasks))
	return nil
}
