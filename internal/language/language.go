package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Canonical parses a BCP 47 or ISO 639 code and returns its canonical form
// ("EN-us" becomes "en-US", "eng" becomes "en"). Empty, undetermined and
// unknown codes report false.
func Canonical(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	tag, err := xlanguage.Parse(code)
	if err != nil || tag == xlanguage.Und {
		return "", false
	}
	return tag.String(), true
}

// Resolve returns the canonical form of code, or of fallback when code is not
// usable. When neither parses the trimmed fallback is returned unchanged.
func Resolve(code, fallback string) string {
	if canonical, ok := Canonical(code); ok {
		return canonical
	}
	if canonical, ok := Canonical(fallback); ok {
		return canonical
	}
	return strings.TrimSpace(fallback)
}

// DisplayName returns the English name of a language code. Returns "Unknown"
// for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	canonical, ok := Canonical(trimmed)
	if !ok {
		return strings.ToUpper(trimmed)
	}
	name := display.English.Languages().Name(xlanguage.Make(canonical))
	if name == "" {
		return strings.ToUpper(trimmed)
	}
	return name
}
