package textfilter

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize trims surrounding whitespace and case-folds the input so that
// room names, direction tokens and challenge answers compare without regard
// to case.
func Normalize(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	// Casers carry state, so a fresh one is built per call.
	return cases.Fold().String(trimmed)
}

// Equal reports whether two strings are the same after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
