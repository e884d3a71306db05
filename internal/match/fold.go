package match

import (
	"strings"
	"unicode"
)

// Fold normalizes an identifier for comparison.
// The pipeline:
// 1. Trim surrounding whitespace.
// 2. Case-fold to lower.
// 3. Strip separators (_, -, ., spaces).
func Fold(s string) string {
	s = strings.TrimSpace(s)

	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// Equal reports whether two identifiers fold to the same form.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Lookup returns the value whose key folds to the same form as s.
// Keys of table are expected to be folded already.
func Lookup[V any](table map[string]V, s string) (V, bool) {
	v, ok := table[Fold(s)]
	return v, ok
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}
