// Package tmdb provides the minimal TMDB API client used to resolve Plex
// collections and list their expected members.
//
// It exposes collection details, movie details (including the parent
// collection a movie belongs to) and IMDb-to-TMDB translation through the
// find endpoint. The query language is a per-call argument so each library
// can be checked in its own locale. Requests pass through a client-side rate
// limiter and 429 responses are waited out using Retry-After before the
// request is re-issued.
package tmdb
