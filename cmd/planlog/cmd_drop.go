package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagDropYes bool

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the current plan",
	Long:  "Deletes every entry of the plan surrounding the working copy. Refused while any entry still carries file changes.",
	Args:  cobra.NoArgs,
	RunE:  runE(runDrop),
}

func init() {
	dropCmd.Flags().BoolVarP(&flagDropYes, "yes", "y", false, "skip the confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
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

	if !flagDropYes {
		fmt.Printf("delete plan %s with %d tasks? [y/N] ", p.Tag, len(p.Tasks))
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("aborted")
			return nil
		}
	}

	if err := s.svc.Drop(ctx); err != nil {
		return err
	}
	fmt.Printf("dropped plan %s\n", p.Tag)
	return nil
}
