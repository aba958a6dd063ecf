package collections

import "plexmissing/internal/identification/tmdb"

// Missing returns the parts absent from owned, keeping the input order. Parts
// without a release year, or released after currentYear, are never missing.
func Missing(parts []tmdb.Part, owned map[int64]struct{}, currentYear int) []tmdb.Part {
	var missing []tmdb.Part
	for _, part := range parts {
		year, ok := part.Year()
		if !ok || year > currentYear {
			continue
		}
		if _, have := owned[part.ID]; have {
			continue
		}
		missing = append(missing, part)
	}
	return missing
}
