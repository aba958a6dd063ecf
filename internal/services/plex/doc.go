// Package plex reads library sections, collections and collection members
// from a Plex Media Server.
//
// The client speaks the server's XML API with the X-Plex-Token header and the
// standard X-Plex identification headers. Each client instance carries a random
// client identifier. Collection listings are decoded from both Directory and
// Metadata nodes because server versions disagree on which one they emit.
package plex
