package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entrhq/planlog/pkg/plan"
	"github.com/entrhq/planlog/pkg/plan/planfile"
	"github.com/entrhq/planlog/pkg/plan/store"
)

var amendCmd = &cobra.Command{
	Use:   "amend <task.yaml>",
	Short: "Overwrite the current entry's description with one task",
	Long: `Documents the working copy entry retroactively, whether or not it
already carries file changes. The file must contain exactly one task. The
tag is taken from the file, falling back to the surrounding plan's tag, and
finally to a fresh one.`,
	Args: cobra.ExactArgs(1),
	RunE: runE(runAmend),
}

func runAmend(cmd *cobra.Command, args []string) error {
	f, err := planfile.Read(args[0])
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	tasks := f.TaskList()
	if len(tasks) == 1 && tasks[0].Tag == "" {
		if p, err := s.svc.Load(ctx); err == nil {
			tasks[0].Tag = p.Tag
		} else {
			tag, err := plan.NewTag()
			if err != nil {
				return err
			}
			tasks[0].Tag = tag
		}
	}

	if err := s.svc.Save(ctx, tasks, store.SaveOverwrite); err != nil {
		return err
	}
	fmt.Println("current entry rewritten")
	return nil
}
