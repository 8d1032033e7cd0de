package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entrhq/planlog/pkg/ui"
)

var gotoCmd = &cobra.Command{
	Use:   "goto [key]",
	Short: "Move the working copy to a plan task",
	Long:  "Moves the working copy to the given task. With no key, opens an interactive picker over the current plan.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runE(runGoto),
}

func runGoto(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	p, err := s.svc.Load(ctx)
	if err != nil {
		return err
	}

	var key string
	if len(args) == 1 {
		key, err = resolveKey(p, args[0])
		if err != nil {
			return err
		}
	} else {
		key, err = ui.PickTask(p)
		if errors.Is(err, ui.ErrPickerCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	if err := s.svc.Goto(ctx, key); err != nil {
		return err
	}
	fmt.Printf("now at: %s\n", ui.TaskLabel(*p.TaskByKey(key)))
	return nil
}
