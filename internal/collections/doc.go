// Package collections holds the pure diffing rules that decide which members
// of a TMDB collection are missing from a Plex collection.
//
// Nothing here performs I/O: callers pass the TMDB parts and the set of owned
// TMDB movie IDs and receive a Result ready for the report writer.
package collections
