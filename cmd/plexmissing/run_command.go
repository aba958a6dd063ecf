package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"plexmissing/internal/logging"
	"plexmissing/internal/report"
	"plexmissing/internal/services"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var debug bool
	var dryRun bool
	var libraries []int

	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Check Plex collections for missing movies",
		Example: "  plexmissing run --dry-run --library 5 --library 8",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd, cfg, debug)
			if err != nil {
				return err
			}

			runCtx := services.WithRunID(cmd.Context(), uuid.NewString())
			logger = logging.WithContext(runCtx, logger)
			if debug {
				logger.Debug("configuration",
					logging.String("path", ctx.configPath),
					logging.Any("config", cfg.Redacted()),
				)
			}

			if !dryRun {
				lock, err := report.AcquireLock(cfg.OutputDir)
				if err != nil {
					return err
				}
				defer func() {
					if err := lock.Release(); err != nil {
						logger.Warn("release output lock", logging.Error(err))
					}
				}()
			}

			w, err := newWalker(cmd, cfg, logger, walkOptions{dryRun: dryRun, libraries: libraries})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "\nChecking Collection(s)")
			summary, err := w.Run(runCtx)
			stderr := cmd.ErrOrStderr()
			for _, lib := range summary.Libraries {
				fmt.Fprintln(stderr, lib.String())
			}
			if dryRun && err == nil {
				fmt.Fprintln(stderr, "Dry run: no report files were written")
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&debug, "debug", "v", false, "Enable debug logging and print the effective configuration")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Print results without writing report files")
	cmd.Flags().IntSliceVar(&libraries, "library", nil, "Library ID to check (repeatable, default all movie libraries)")
	return cmd
}
