package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"isynspec/internal/config"
	"isynspec/internal/session"
)

func newStageCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stage",
		Short: "Prepare the working directory and stage input files",
		Long: "Resolves the configured working directory, acquires its lock when\n" +
			"enabled, and copies the configured input files into it. The directory\n" +
			"is left in place so SYNSPEC can be run against it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Workdir.Strategy == config.StrategyTemporary && !cfg.Workdir.PreserveTemp {
				return fmt.Errorf("staging a temporary working directory requires preserve_temp")
			}

			sess, err := session.New(cfg, ctx.ensureLogger())
			if err != nil {
				return err
			}
			if err := sess.Init(); err != nil {
				return err
			}

			dir, err := sess.Dir()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Staged %d input files into %s\n",
				len(cfg.Session.InputFiles), dir)
			// Leave the directory (and its lock file) for the run; only the
			// process-held lock is released.
			return sess.Close()
		},
	}
}

func newCollectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Copy output files from the working directory",
		Long: "Copies the configured output files out of the working directory\n" +
			"into the configured output directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Session.OutputDir == "" || len(cfg.Session.OutputFiles) == 0 {
				return fmt.Errorf("session.output_dir and session.output_files must be configured")
			}

			if cfg.Workdir.Strategy == config.StrategyTemporary {
				return fmt.Errorf("cannot collect from a temporary working directory")
			}

			sess, err := session.New(cfg, ctx.ensureLogger())
			if err != nil {
				return err
			}
			if err := sess.Attach(); err != nil {
				return err
			}
			if err := sess.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Collected output files into %s\n", cfg.Session.OutputDir)
			return nil
		},
	}
}
