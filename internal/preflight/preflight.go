package preflight

import (
	"context"

	"plexmissing/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

// RunAll executes every readiness check for a run against cfg.
func RunAll(ctx context.Context, cfg *config.Config, plexAPI LibraryLister, tmdbAPI Pinger) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckOutputDirectory("Output directory", cfg.OutputDir),
		CheckPlex(ctx, plexAPI),
		CheckTMDB(ctx, tmdbAPI),
	}
}
