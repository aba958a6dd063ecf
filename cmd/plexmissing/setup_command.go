package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"plexmissing/internal/config"
	"plexmissing/internal/services"
)

func newSetupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "setup",
		Short:       "Set configuration values",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := config.Locate(ctx.configPathFlag())
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "config", "locate", "", err)
			}
			return ctx.runSetup(cmd, path)
		},
	}
}

func (c *commandContext) runSetup(cmd *cobra.Command, path string) error {
	p := c.prompter(cmd)
	ctx := cmd.Context()
	plexURL, err := p.ask(ctx, "Please enter your Plex URL")
	if err != nil {
		return err
	}
	plexToken, err := p.ask(ctx, "Please enter your Plex Token")
	if err != nil {
		return err
	}
	tmdbKey, err := p.ask(ctx, "Please enter your TMDB API Key")
	if err != nil {
		return err
	}

	creds := config.Credentials{PlexURL: plexURL, PlexToken: plexToken, TMDBKey: tmdbKey}
	if err := config.SaveCredentials(path, creds); err != nil {
		return services.Wrap(services.ErrConfiguration, "setup", "write config", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
	return nil
}
