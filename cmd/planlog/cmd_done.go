package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/entrhq/planlog/pkg/plan"
	"github.com/entrhq/planlog/pkg/plan/store"
	"github.com/entrhq/planlog/pkg/ui"
)

var doneCmd = &cobra.Command{
	Use:   "done <key>",
	Short: "Mark a task complete",
	Args:  cobra.ExactArgs(1),
	RunE:  runE(markCompletion(true)),
}

var undoneCmd = &cobra.Command{
	Use:   "undone <key>",
	Short: "Mark a task incomplete again",
	Args:  cobra.ExactArgs(1),
	RunE:  runE(markCompletion(false)),
}

func markCompletion(completed bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
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

		key, err := resolveKey(p, args[0])
		if err != nil {
			return err
		}
		task := p.TaskByKey(key)
		task.Completed = completed

		if err := s.svc.Save(ctx, p.Tasks, store.SaveUpdate); err != nil {
			return err
		}

		state := "done"
		if !completed {
			state = "not done"
		}
		fmt.Printf("%s: %s\n", state, ui.TaskLabel(*task))
		return nil
	}
}

// resolveKey matches a caller-supplied key, allowing unambiguous prefixes
// of the backing log's identifiers.
func resolveKey(p *plan.Plan, arg string) (string, error) {
	var matches []string
	for _, t := range p.Tasks {
		if t.Key == arg {
			return arg, nil
		}
		if strings.HasPrefix(t.Key, arg) {
			matches = append(matches, t.Key)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", &plan.InvocationError{Keys: []string{arg}}
	default:
		return "", fmt.Errorf("key %q is ambiguous, matches: %s", arg, strings.Join(matches, ", "))
	}
}
