package main

import (
	"bytes"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/entrhq/planlog/pkg/plan/planfile"
	"github.com/entrhq/planlog/pkg/ui"
)

var (
	flagShowScope string
	flagShowYAML  bool
	flagShowCopy  bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the plan surrounding the working copy",
	Args:  cobra.NoArgs,
	RunE:  runE(runShow),
}

func init() {
	showCmd.Flags().StringVar(&flagShowScope, "scope", "", "only show tasks whose scope matches this glob, e.g. 'ui/*'")
	showCmd.Flags().BoolVar(&flagShowYAML, "yaml", false, "print the YAML projection instead of the styled list")
	showCmd.Flags().BoolVar(&flagShowCopy, "copy", false, "copy the YAML projection to the clipboard")
}

func runShow(cmd *cobra.Command, args []string) error {
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

	if flagShowYAML || flagShowCopy {
		var buf bytes.Buffer
		if err := planfile.Encode(&buf, planfile.Project(p)); err != nil {
			return err
		}
		if flagShowCopy {
			if err := clipboard.WriteAll(buf.String()); err != nil {
				return fmt.Errorf("failed to copy plan to clipboard: %w", err)
			}
			fmt.Printf("copied plan %s (%d tasks) to clipboard\n", p.Tag, len(p.Tasks))
			if !flagShowYAML {
				return nil
			}
		}
		fmt.Print(buf.String())
		return nil
	}

	current, err := s.svc.Current(ctx)
	if err != nil {
		return err
	}
	out, err := ui.RenderPlan(p, ui.RenderOptions{
		ScopeGlob:  flagShowScope,
		CurrentKey: current,
		Color:      s.color(),
	})
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
