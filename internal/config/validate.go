package config

import (
	"errors"
	"fmt"
	"net/url"

	"plexmissing/internal/services"
)

// Validate ensures the configuration is usable. Failures carry
// services.ErrValidation.
func (c *Config) Validate() error {
	for _, check := range []func() error{c.validatePlex, c.validateTMDB, c.validateLogging} {
		if err := check(); err != nil {
			return services.Wrap(services.ErrValidation, "config", "validate", "", err)
		}
	}
	return nil
}

func (c *Config) validatePlex() error {
	if c.PlexURL == "" {
		return errors.New("plex_url is required (run 'plexmissing setup' or set PLEX_URL)")
	}
	if err := validateHTTPURL("plex_url", c.PlexURL); err != nil {
		return err
	}
	if c.PlexToken == "" {
		return errors.New("plex_token is required (run 'plexmissing setup' or set PLEX_TOKEN)")
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDBKey == "" {
		return errors.New("tmdb_key is required (run 'plexmissing setup' or set TMDB_API_KEY)")
	}
	if err := validateHTTPURL("tmdb_base_url", c.TMDBBaseURL); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}
}

func validateHTTPURL(key, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https (got %q)", key, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host (got %q)", key, value)
	}
	return nil
}
