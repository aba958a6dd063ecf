package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var outputDirFlag string

	ctx := newCommandContext(&configFlag, &outputDirFlag)

	rootCmd := &cobra.Command{
		Use:           "plexmissing",
		Short:         "Report movies missing from Plex collections",
		Long:          "plexmissing compares every Plex movie collection with its TMDB collection and writes one report per library listing the released movies you do not own.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			return ctx.ensureConfigFile(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&outputDirFlag, "output-dir", "o", "", "Directory for report files (overrides output_dir)")

	rootCmd.AddCommand(newSetupCommand(ctx))
	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
