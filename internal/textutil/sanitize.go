package textutil

import "strings"

// fileNameReplacer maps spaces and path separators to underscores.
var fileNameReplacer = strings.NewReplacer(
	" ", "_",
	"/", "_",
	"\\", "_",
)

// SanitizeFileName turns a display title into a single path segment. Spaces
// and path separators become underscores; everything else is kept so titles
// stay recognizable, including leading and trailing spaces.
func SanitizeFileName(name string) string {
	return fileNameReplacer.Replace(name)
}
