package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/entrhq/planlog/pkg/plan/planfile"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current plan as a plan file",
	Long:  "Writes the YAML projection of the plan surrounding the working copy, ready to edit and feed back to apply.",
	Args:  cobra.NoArgs,
	RunE:  runE(runExport),
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "write to this path instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	p, err := s.svc.Load(cmd.Context())
	if err != nil {
		return err
	}

	out := os.Stdout
	if flagExportOut != "" {
		f, err := os.Create(flagExportOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", flagExportOut, err)
		}
		defer f.Close()
		out = f
	}
	return planfile.Encode(out, planfile.Project(p))
}
