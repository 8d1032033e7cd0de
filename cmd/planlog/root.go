package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/entrhq/planlog/pkg/config"
	"github.com/entrhq/planlog/pkg/logging"
	"github.com/entrhq/planlog/pkg/plan/store"
	"github.com/entrhq/planlog/pkg/vcs/jj"
)

const version = "0.1.0"

var (
	flagRepo    string
	flagConfig  string
	flagJJ      string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:           "planlog",
	Short:         "Task plans stored in your jj commit history",
	Long:          "planlog persists an ordered task plan as a contiguous run of change descriptions in a Jujutsu repository, and rewrites the run in place as the plan evolves.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRepo, "repo", "", "repository directory (default: config, then current directory)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.planlog/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagJJ, "jj", "", "jj binary to invoke (default: config, then PATH)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable styled output")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(amendCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
	rootCmd.AddCommand(gotoCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(exportCmd)
}

// session bundles everything a command needs against one repository.
type session struct {
	cfg config.Config
	svc *store.Service
	log *logging.Logger
}

func newSession() (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	bin := cfg.JJBinary
	if flagJJ != "" {
		bin = flagJJ
	}
	dir := cfg.Repository
	if flagRepo != "" {
		dir = flagRepo
	}
	if dir == "" {
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	log, logErr := logging.NewLogger("planlog")
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", logErr)
	}

	return &session{
		cfg: cfg,
		svc: store.NewService(jj.New(bin, dir), log),
		log: log,
	}, nil
}

func (s *session) close() {
	if s.log != nil {
		s.log.Close()
	}
}

func (s *session) color() bool {
	return s.cfg.Color && !flagNoColor
}
