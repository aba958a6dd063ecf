package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeCredentials()
	c.normalizeTMDB()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeCredentials() {
	c.PlexURL = strings.TrimSpace(c.PlexURL)
	if c.PlexURL == "" {
		if value, ok := os.LookupEnv("PLEX_URL"); ok {
			c.PlexURL = strings.TrimSpace(value)
		}
	}
	c.PlexURL = strings.TrimRight(c.PlexURL, "/")

	c.PlexToken = strings.TrimSpace(c.PlexToken)
	if c.PlexToken == "" {
		if value, ok := os.LookupEnv("PLEX_TOKEN"); ok {
			c.PlexToken = strings.TrimSpace(value)
		}
	}

	c.TMDBKey = strings.TrimSpace(c.TMDBKey)
	if c.TMDBKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDBKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeTMDB() {
	c.TMDBBaseURL = strings.TrimRight(strings.TrimSpace(c.TMDBBaseURL), "/")
	if c.TMDBBaseURL == "" {
		c.TMDBBaseURL = defaultTMDBBaseURL
	}
	c.TMDBLanguage = strings.TrimSpace(c.TMDBLanguage)
	if c.TMDBLanguage == "" {
		c.TMDBLanguage = defaultTMDBLanguage
	}
	if c.TMDBRequestsPerSecond <= 0 {
		c.TMDBRequestsPerSecond = defaultTMDBRequestsPerSecond
	}
}

func (c *Config) normalizeOutput() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = defaultOutputDir
	}
	var err error
	if c.OutputDir, err = expandPath(strings.TrimSpace(c.OutputDir)); err != nil {
		return fmt.Errorf("output_dir: %w", err)
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case "json":
	default:
		c.LogFormat = defaultLogFormat
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if file := strings.TrimSpace(c.LogFile); file != "" {
		var err error
		if c.LogFile, err = expandPath(file); err != nil {
			return fmt.Errorf("log_file: %w", err)
		}
	}
	return nil
}
