package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"plexmissing/internal/preflight"
	"plexmissing/internal/report"
	"plexmissing/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify Plex, TMDB and the output directory are ready",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd, cfg, false)
			if err != nil {
				return err
			}
			c, err := newClients(cfg, logger)
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg, c.plex, c.tmdb)
			if jsonOutput {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				console := report.NewConsole(cmd.OutOrStdout())
				for _, r := range results {
					if r.Passed {
						console.Println(report.ToneSuccess, fmt.Sprintf("✓ %s: %s", r.Name, r.Detail))
					} else {
						console.Println(report.ToneFailure, fmt.Sprintf("✗ %s: %s", r.Name, r.Detail))
					}
				}
			}
			if preflight.Failed(results) {
				return fmt.Errorf("%w: preflight checks failed", services.ErrExternal)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
