// Package language normalizes the language codes Plex reports for a library
// into the tags TMDB accepts for localized titles.
package language
