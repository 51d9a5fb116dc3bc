package domain

import (
	"strings"
)

// NormalizeKey prepares a client-supplied key (category, difficulty) for
// storage and comparison: whitespace is trimmed and collapsed to single
// spaces, letters are lowercased. Diacritics, hyphens and underscores are kept.
func NormalizeKey(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
