// Package services defines shared utilities consumed by the walker and the
// external integrations (Plex, TMDB).
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and library titles for
//     logging.
//   - Structured error markers plus the Wrap helper so the CLI can classify
//     failures (configuration, validation, external) and choose an exit code.
//
// The Plex client lives in the plex subpackage.
package services
