package walker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"plexmissing/internal/collections"
	"plexmissing/internal/identification"
	"plexmissing/internal/identification/tmdb"
	"plexmissing/internal/language"
	"plexmissing/internal/logging"
	"plexmissing/internal/report"
	"plexmissing/internal/services"
	"plexmissing/internal/services/plex"
)

// CollectionSource fetches canonical TMDB collections.
type CollectionSource interface {
	GetCollection(ctx context.Context, collectionID int64, language string) (*tmdb.Collection, error)
}

// CollectionResolver maps Plex item GUIDs to TMDB identifiers.
type CollectionResolver interface {
	ResolveCollection(ctx context.Context, guids []string, language string) (identification.Resolution, error)
	OwnedIDs(ctx context.Context, guids []string, language string) (map[int64]struct{}, error)
}

// Config wires a Walker.
type Config struct {
	Plex     plex.API
	TMDB     CollectionSource
	Resolver CollectionResolver
	Reports  *report.Writer
	Console  *report.Console
	Logger   *slog.Logger

	// Libraries restricts Run to these section keys. Empty means every movie library.
	Libraries []int
	// FallbackLanguage is used when a library reports no usable language.
	FallbackLanguage string
	// Now supplies the clock used for the current year.
	Now func() time.Time
}

// Walker drives the collection check across Plex libraries.
type Walker struct {
	plex     plex.API
	tmdb     CollectionSource
	resolver CollectionResolver
	reports  *report.Writer
	console  *report.Console
	logger   *slog.Logger

	allow    []int
	fallback string
	now      func() time.Time
}

// New validates cfg and returns a Walker.
func New(cfg Config) (*Walker, error) {
	switch {
	case cfg.Plex == nil:
		return nil, errors.New("walker: plex client required")
	case cfg.TMDB == nil:
		return nil, errors.New("walker: tmdb client required")
	case cfg.Resolver == nil:
		return nil, errors.New("walker: resolver required")
	case cfg.Reports == nil:
		return nil, errors.New("walker: report writer required")
	case cfg.Console == nil:
		return nil, errors.New("walker: console required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Walker{
		plex:     cfg.Plex,
		tmdb:     cfg.TMDB,
		resolver: cfg.Resolver,
		reports:  cfg.Reports,
		console:  cfg.Console,
		logger:   logging.NewComponentLogger(logger, "walker"),
		allow:    slices.Clone(cfg.Libraries),
		fallback: cfg.FallbackLanguage,
		now:      now,
	}, nil
}

// MovieLibraries lists every movie library, ignoring the allow-list.
func (w *Walker) MovieLibraries(ctx context.Context) ([]plex.Library, error) {
	libraries, err := w.plex.Libraries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}
	movies := make([]plex.Library, 0, len(libraries))
	for _, lib := range libraries {
		if lib.IsMovie() {
			movies = append(movies, lib)
		}
	}
	return movies, nil
}

// Run checks every selected movie library and writes one report per library.
// Network and API failures abort the walk and are returned.
func (w *Walker) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	libraries, err := w.MovieLibraries(ctx)
	if err != nil {
		return summary, err
	}
	year := w.now().Year()

	for _, lib := range libraries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if !w.selected(lib.Key) {
			w.console.Println(report.TonePlain, LibraryLine(lib)+" - SKIPPED")
			summary.Filtered = append(summary.Filtered, lib)
			continue
		}
		w.console.Println(report.TonePlain, LibraryLine(lib))

		libSummary, err := w.checkLibrary(ctx, lib, year)
		summary.Libraries = append(summary.Libraries, libSummary)
		if err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// LibraryLine formats the console line announcing a library.
func LibraryLine(lib plex.Library) string {
	return fmt.Sprintf("ID: %-4s Name: %s", strconv.Itoa(lib.Key), lib.Title)
}

func (w *Walker) selected(key int) bool {
	return len(w.allow) == 0 || slices.Contains(w.allow, key)
}

func (w *Walker) checkLibrary(ctx context.Context, lib plex.Library, year int) (LibrarySummary, error) {
	ctx = services.WithLibrary(ctx, lib.Title)
	logger := logging.WithContext(ctx, w.logger)

	lang := language.Resolve(lib.Language, w.fallback)
	summary := LibrarySummary{Key: lib.Key, Title: lib.Title, Language: lang}

	rep, err := w.reports.Begin(lib.Title)
	if err != nil {
		return summary, err
	}
	summary.ReportPath = rep.Path()

	plexCollections, err := w.plex.Collections(ctx, lib.Key)
	if err != nil {
		return summary, fmt.Errorf("list collections of %q: %w", lib.Title, err)
	}
	total := len(plexCollections)
	logger.Info("checking library",
		logging.Int("library_key", lib.Key),
		logging.String("language", lang),
		logging.Int("collections", total),
	)

	for i, col := range plexCollections {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		result, err := w.checkCollection(ctx, logger, col, i+1, total, lang, year)
		if err != nil {
			return summary, fmt.Errorf("collection %q: %w", col.Title, err)
		}
		if err := rep.Write(result); err != nil {
			return summary, err
		}
		summary.add(result)
	}
	return summary, nil
}

func (w *Walker) checkCollection(ctx context.Context, logger *slog.Logger, col plex.Collection, index, total int, lang string, year int) (collections.Result, error) {
	logger = logger.With(logging.String(logging.FieldCollection, col.Title))

	items, err := w.plex.CollectionItems(ctx, col.RatingKey)
	if err != nil {
		return collections.Result{}, err
	}
	if len(items) == 0 {
		logger.Warn("collection is empty, skipping")
		return collections.Skipped(col.Title, index, total, "collection has no items"), nil
	}
	logger.Debug("collection items", logging.Int("child_count", col.ChildCount), logging.Int("items", len(items)))
	guids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := identification.ParseGUID(item.GUID); !ok {
			logger.Debug("item has no supported guid",
				logging.String("item", item.Title),
				logging.Int("year", item.Year),
				logging.String("rating_key", item.RatingKey),
				logging.String("guid", item.GUID),
			)
		}
		guids = append(guids, item.GUID)
	}

	resolution, err := w.resolver.ResolveCollection(ctx, guids, lang)
	if errors.Is(err, services.ErrNotFound) {
		logger.Warn("matched movie unknown to tmdb, skipping", logging.Error(err))
		return collections.Skipped(col.Title, index, total, "matched movie not found on TMDB"), nil
	}
	if err != nil {
		return collections.Result{}, err
	}

	switch resolution.Status {
	case identification.Unresolved:
		logger.Warn("no item carries a supported guid, skipping", logging.Int("items", len(items)))
		return collections.Skipped(col.Title, index, total, "no item with an IMDb or TMDB guid"), nil
	case identification.NoParentCollection:
		logger.Debug("movie belongs to no tmdb collection", logging.Int64("tmdb_id", resolution.MovieID))
		return collections.Evaluate(col.Title, index, total, nil, nil, year), nil
	}

	canonical, err := w.tmdb.GetCollection(ctx, resolution.CollectionID, lang)
	if errors.Is(err, services.ErrNotFound) {
		logger.Warn("tmdb collection not found, skipping", logging.Int64("tmdb_collection_id", resolution.CollectionID))
		return collections.Skipped(col.Title, index, total, "TMDB collection not found"), nil
	}
	if err != nil {
		return collections.Result{}, fmt.Errorf("tmdb collection %d: %w", resolution.CollectionID, err)
	}

	owned, err := w.resolver.OwnedIDs(ctx, guids, lang)
	if err != nil {
		return collections.Result{}, err
	}
	result := collections.Evaluate(col.Title, index, total, canonical.Parts, owned, year)
	logger.Debug("collection checked",
		logging.Int64("tmdb_collection_id", canonical.ID),
		logging.Int("parts", len(canonical.Parts)),
		logging.Int("owned", len(owned)),
		logging.Int("missing", len(result.Missing)),
	)
	return result, nil
}
