package identification

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"plexmissing/internal/identification/tmdb"
	"plexmissing/internal/logging"
)

// ResolutionStatus is the outcome of mapping a Plex collection to TMDB.
type ResolutionStatus int

const (
	// Unresolved means no item carried a usable GUID; nothing was looked up.
	Unresolved ResolutionStatus = iota
	// NoParentCollection means the matched movie belongs to no TMDB collection.
	NoParentCollection
	// Resolved means CollectionID names the TMDB collection.
	Resolved
)

func (s ResolutionStatus) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case NoParentCollection:
		return "no_parent_collection"
	default:
		return "unresolved"
	}
}

// Resolution carries the resolver outcome. CollectionID is set only when
// Status is Resolved; MovieID is the TMDB movie that drove the lookup.
type Resolution struct {
	Status       ResolutionStatus
	CollectionID int64
	MovieID      int64
}

// MovieLookup is the subset of the TMDB client the resolver needs.
type MovieLookup interface {
	GetMovieDetails(ctx context.Context, movieID int64, language string) (*tmdb.Movie, error)
	FindByIMDbID(ctx context.Context, imdbID, language string) (int64, bool, error)
}

// Resolver maps Plex item GUIDs to TMDB movie and collection identifiers.
type Resolver struct {
	tmdb   MovieLookup
	logger *slog.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(client MovieLookup, logger *slog.Logger) *Resolver {
	return &Resolver{
		tmdb:   client,
		logger: logging.NewComponentLogger(logger, "resolver"),
	}
}

// ResolveCollection walks guids in order and resolves the TMDB collection of
// the first one that maps to a TMDB movie. At most one movie detail lookup is
// made. API failures are returned as-is.
func (r *Resolver) ResolveCollection(ctx context.Context, guids []string, language string) (Resolution, error) {
	for _, guid := range guids {
		movieID, ok, err := r.MovieID(ctx, guid, language)
		if err != nil {
			return Resolution{}, err
		}
		if !ok {
			continue
		}

		movie, err := r.tmdb.GetMovieDetails(ctx, movieID, language)
		if err != nil {
			return Resolution{}, fmt.Errorf("movie details %d: %w", movieID, err)
		}
		if movie.BelongsToCollection == nil || movie.BelongsToCollection.ID <= 0 {
			r.logger.Debug("movie has no parent collection", logging.Int64("tmdb_id", movieID), logging.String("guid", guid))
			return Resolution{Status: NoParentCollection, MovieID: movieID}, nil
		}
		return Resolution{Status: Resolved, CollectionID: movie.BelongsToCollection.ID, MovieID: movieID}, nil
	}
	return Resolution{Status: Unresolved}, nil
}

// OwnedIDs resolves every GUID to a TMDB movie ID. GUIDs that do not map are
// ignored.
func (r *Resolver) OwnedIDs(ctx context.Context, guids []string, language string) (map[int64]struct{}, error) {
	owned := make(map[int64]struct{}, len(guids))
	for _, guid := range guids {
		movieID, ok, err := r.MovieID(ctx, guid, language)
		if err != nil {
			return nil, err
		}
		if ok {
			owned[movieID] = struct{}{}
		}
	}
	return owned, nil
}

// MovieID maps a single GUID to a TMDB movie ID. IMDb keys are translated
// through TMDB; TheMovieDB keys are used directly.
func (r *Resolver) MovieID(ctx context.Context, guid, language string) (int64, bool, error) {
	match, ok := ParseGUID(guid)
	if !ok {
		r.logger.Debug("unsupported guid", logging.String("guid", guid))
		return 0, false, nil
	}

	switch match.Provider {
	case ProviderIMDb:
		id, found, err := r.tmdb.FindByIMDbID(ctx, match.Key, language)
		if err != nil {
			return 0, false, fmt.Errorf("translate %s: %w", match.Key, err)
		}
		if !found {
			r.logger.Debug("imdb id unknown to tmdb", logging.String("imdb_id", match.Key))
		}
		return id, found, nil
	default:
		id, err := strconv.ParseInt(match.Key, 10, 64)
		if err != nil || id <= 0 {
			r.logger.Debug("non-numeric tmdb key", logging.String("key", match.Key))
			return 0, false, nil
		}
		return id, true, nil
	}
}
