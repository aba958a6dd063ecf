// Package walker iterates Plex movie libraries and their collections, feeding
// each collection through resolution, diffing and reporting.
//
// The walk is sequential. Each library's Plex language is canonicalized and
// passed explicitly to every TMDB call made for that library. Collections that
// cannot be matched are reported as skipped; transport and API failures stop
// the walk.
package walker
