// Package config loads, normalizes, and validates plexmissing configuration.
//
// The file is a flat YAML document (plex_url, plex_token, tmdb_key plus
// optional tuning keys); a path ending in .toml is read as TOML instead.
// Secrets fall back to the PLEX_URL, PLEX_TOKEN and TMDB_API_KEY environment
// variables. Any parse or validation failure is fatal and tagged with
// services.ErrConfiguration.
package config
