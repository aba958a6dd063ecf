package identification

import (
	"regexp"
	"strings"
)

// Provider names the legacy Plex metadata agent that produced a GUID.
type Provider string

const (
	ProviderIMDb Provider = "imdb"
	ProviderTMDB Provider = "tmdb"
)

const (
	imdbAgentPrefix = "com.plexapp.agents.imdb://"
	tmdbAgentPrefix = "com.plexapp.agents.themoviedb://"
)

var (
	imdbKeyPattern = regexp.MustCompile(`tt[0-9]\w+`)
	tmdbKeyPattern = regexp.MustCompile(`[0-9]\w+`)
)

// Match is the provider and provider-native key embedded in a GUID.
type Match struct {
	Provider Provider
	Key      string
}

// ParseGUID classifies a Plex item GUID. Only the IMDb and TheMovieDB legacy
// agents are recognised; any other GUID yields false.
func ParseGUID(guid string) (Match, bool) {
	switch {
	case strings.HasPrefix(guid, imdbAgentPrefix):
		return findKey(ProviderIMDb, imdbKeyPattern, guid[len(imdbAgentPrefix):])
	case strings.HasPrefix(guid, tmdbAgentPrefix):
		return findKey(ProviderTMDB, tmdbKeyPattern, guid[len(tmdbAgentPrefix):])
	default:
		return Match{}, false
	}
}

func findKey(provider Provider, pattern *regexp.Regexp, rest string) (Match, bool) {
	key := pattern.FindString(rest)
	if key == "" {
		return Match{}, false
	}
	return Match{Provider: provider, Key: key}, true
}
