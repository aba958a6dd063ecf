package walker

import (
	"fmt"

	"plexmissing/internal/collections"
	"plexmissing/internal/services/plex"
)

// LibrarySummary tallies the results of one checked library.
type LibrarySummary struct {
	Key          int
	Title        string
	Language     string
	ReportPath   string
	Complete     int
	Incomplete   int
	Skipped      int
	MissingParts int
}

// Collections returns the number of collections checked.
func (s LibrarySummary) Collections() int {
	return s.Complete + s.Incomplete + s.Skipped
}

// String renders the end-of-run line for the library.
func (s LibrarySummary) String() string {
	return fmt.Sprintf("%s: %d collection(s), %d complete, %d incomplete, %d skipped, %d missing movie(s)",
		s.Title, s.Collections(), s.Complete, s.Incomplete, s.Skipped, s.MissingParts)
}

func (s *LibrarySummary) add(result collections.Result) {
	switch result.Status {
	case collections.StatusComplete:
		s.Complete++
	case collections.StatusIncomplete:
		s.Incomplete++
		s.MissingParts += len(result.Missing)
	default:
		s.Skipped++
	}
}

// Summary is the outcome of a Run.
type Summary struct {
	Libraries []LibrarySummary
	// Filtered lists movie libraries excluded by the allow-list.
	Filtered []plex.Library
}
