// Package identification maps Plex items to TMDB identifiers.
//
// ParseGUID recognises the legacy IMDb and TheMovieDB agent GUIDs. The
// Resolver turns the first usable GUID of a collection into a TMDB collection
// (or reports that the movie stands alone, or that nothing could be matched)
// and resolves every GUID of a collection into the set of owned TMDB movie IDs.
// The TMDB HTTP client lives in the tmdb subpackage.
package identification
