package collections

import "plexmissing/internal/identification/tmdb"

// Status is the per-collection verdict written to the report.
type Status int

const (
	StatusComplete Status = iota
	StatusIncomplete
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusIncomplete:
		return "incomplete"
	default:
		return "skipped"
	}
}

// Result is the outcome for one Plex collection. Index is 1-based within the
// library and Total is the number of collections in it.
type Result struct {
	Title   string
	Index   int
	Total   int
	Status  Status
	Missing []tmdb.Part
	// Reason explains a skipped collection.
	Reason string
}

// Evaluate diffs parts against owned and builds the result.
func Evaluate(title string, index, total int, parts []tmdb.Part, owned map[int64]struct{}, currentYear int) Result {
	result := Result{Title: title, Index: index, Total: total, Status: StatusComplete}
	if missing := Missing(parts, owned, currentYear); len(missing) > 0 {
		result.Status = StatusIncomplete
		result.Missing = missing
	}
	return result
}

// Skipped builds the result for a collection that could not be checked.
func Skipped(title string, index, total int, reason string) Result {
	return Result{Title: title, Index: index, Total: total, Status: StatusSkipped, Reason: reason}
}
