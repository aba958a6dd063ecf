package main

import (
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"plexmissing/internal/config"
	"plexmissing/internal/identification"
	"plexmissing/internal/identification/tmdb"
	"plexmissing/internal/report"
	"plexmissing/internal/services"
	"plexmissing/internal/services/plex"
	"plexmissing/internal/walker"
)

type clients struct {
	plex *plex.Client
	tmdb *tmdb.Client
}

func newClients(cfg *config.Config, logger *slog.Logger) (clients, error) {
	timeout := cfg.RequestTimeoutDuration()

	plexClient, err := plex.New(cfg.PlexURL, cfg.PlexToken,
		plex.WithTimeout(timeout),
		plex.WithLogger(logger),
	)
	if err != nil {
		return clients{}, services.Wrap(services.ErrConfiguration, "plex", "init", "", err)
	}
	tmdbClient, err := tmdb.New(cfg.TMDBKey, cfg.TMDBBaseURL,
		tmdb.WithHTTPClient(&http.Client{Timeout: timeout}),
		tmdb.WithRequestsPerSecond(cfg.TMDBRequestsPerSecond),
		tmdb.WithLogger(logger),
	)
	if err != nil {
		return clients{}, services.Wrap(services.ErrConfiguration, "tmdb", "init", "", err)
	}
	return clients{plex: plexClient, tmdb: tmdbClient}, nil
}

type walkOptions struct {
	dryRun    bool
	libraries []int
}

func newWalker(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, opts walkOptions) (*walker.Walker, error) {
	c, err := newClients(cfg, logger)
	if err != nil {
		return nil, err
	}
	console := report.NewConsole(cmd.OutOrStdout())
	return walker.New(walker.Config{
		Plex:             c.plex,
		TMDB:             c.tmdb,
		Resolver:         identification.NewResolver(c.tmdb, logger),
		Reports:          report.NewWriter(cfg.OutputDir, console, report.WithDryRun(opts.dryRun), report.WithLogger(logger)),
		Console:          console,
		Logger:           logger,
		Libraries:        opts.libraries,
		FallbackLanguage: cfg.TMDBLanguage,
	})
}
