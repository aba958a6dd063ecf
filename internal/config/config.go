package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"plexmissing/internal/services"
)

// Config holds every setting the CLI needs. The three credentials are the
// only required keys; everything else has a repository default.
type Config struct {
	PlexURL   string `yaml:"plex_url" toml:"plex_url"`
	PlexToken string `yaml:"plex_token" toml:"plex_token"`
	TMDBKey   string `yaml:"tmdb_key" toml:"tmdb_key"`

	TMDBBaseURL           string  `yaml:"tmdb_base_url" toml:"tmdb_base_url"`
	TMDBLanguage          string  `yaml:"tmdb_language" toml:"tmdb_language"`
	TMDBRequestsPerSecond float64 `yaml:"tmdb_requests_per_second" toml:"tmdb_requests_per_second"`

	OutputDir      string `yaml:"output_dir" toml:"output_dir"`
	RequestTimeout int    `yaml:"request_timeout" toml:"request_timeout"`

	LogLevel  string `yaml:"log_level" toml:"log_level"`
	LogFormat string `yaml:"log_format" toml:"log_format"`
	LogFile   string `yaml:"log_file" toml:"log_file"`
}

// Credentials are the values collected by the interactive setup.
type Credentials struct {
	PlexURL   string `yaml:"plex_url" toml:"plex_url"`
	PlexToken string `yaml:"plex_token" toml:"plex_token"`
	TMDBKey   string `yaml:"tmdb_key" toml:"tmdb_key"`
}

// DefaultConfigPath returns the absolute path to the per-user configuration file.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Locate resolves the configuration path without reading it. An explicit path
// wins; otherwise ./config.yaml is used when present, then the per-user file.
// The boolean reports whether the resolved file exists.
func Locate(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(strings.TrimSpace(path))
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// Load locates, parses, and validates a configuration file. Any parse or
// validation problem is returned as an ErrConfiguration error.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := Locate(path)
	if err != nil {
		return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "locate", "", err)
	}

	if exists {
		data, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, resolvedPath, true, services.Wrap(services.ErrConfiguration, "config", "read", resolvedPath, err)
		}
		if err := decode(resolvedPath, data, &cfg); err != nil {
			return nil, resolvedPath, true, services.Wrap(services.ErrConfiguration, "config", "parse", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, resolvedPath, exists, services.Wrap(services.ErrConfiguration, "config", "normalize", resolvedPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, resolvedPath, exists, services.Wrap(services.ErrConfiguration, "config", "", resolvedPath, err)
	}
	return &cfg, resolvedPath, exists, nil
}

// SaveCredentials writes the setup values to path, creating parent
// directories. Paths ending in .toml are written as TOML, everything else
// as YAML.
func SaveCredentials(path string, creds Credentials) error {
	creds.PlexURL = strings.TrimRight(strings.TrimSpace(creds.PlexURL), "/")
	creds.PlexToken = strings.TrimSpace(creds.PlexToken)
	creds.TMDBKey = strings.TrimSpace(creds.TMDBKey)

	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(creds)
	} else {
		data, err = yaml.Marshal(creds)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// RequestTimeoutDuration returns the HTTP timeout shared by the Plex and TMDB clients.
func (c *Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// Redacted returns a copy safe for logging, with secrets masked.
func (c *Config) Redacted() Config {
	out := *c
	out.PlexToken = mask(c.PlexToken)
	out.TMDBKey = mask(c.TMDBKey)
	return out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}

func decode(path string, data []byte, cfg *Config) error {
	if isTOML(path) {
		return toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
