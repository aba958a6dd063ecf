// Package preflight provides readiness checks for the services and paths a
// run depends on.
//
// The CLI "check" command runs them before a user commits to a long walk:
// Plex must accept the token, TMDB must accept the API key, and the output
// directory must be writable or creatable.
package preflight
