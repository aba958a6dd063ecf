package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"plexmissing/internal/language"
	"plexmissing/internal/report"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all movie libraries",
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
			w, err := newWalker(cmd, cfg, logger, walkOptions{dryRun: true})
			if err != nil {
				return err
			}

			libraries, err := w.MovieLibraries(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, libraries)
			}

			out := cmd.OutOrStdout()
			if len(libraries) == 0 {
				fmt.Fprintln(out, "No movie libraries found")
				return nil
			}
			rows := make([][]string, 0, len(libraries))
			for _, lib := range libraries {
				rows = append(rows, []string{
					strconv.Itoa(lib.Key),
					lib.Title,
					language.DisplayName(lib.Language),
					report.FileName(lib.Title),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Language", "Report"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
