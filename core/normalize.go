package core

import (
	"slices"
	"strings"
)

// NormalizeTag trims leading and trailing whitespace and lower-cases a tag
// name. Tag identity everywhere in the system is the normalized form, so
// " AI ", "ai" and "AI" are the same tag. Empty or whitespace-only input
// normalizes to the empty string; callers must filter empties before using
// the result as an identity.
//
// NormalizeTag is idempotent: NormalizeTag(NormalizeTag(t)) == NormalizeTag(t).
func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeTags normalizes every name, drops empties, deduplicates and
// sorts. The result is the canonical resolved tag set stored on insights.
func NormalizeTags(names []string) []string {
	normalized := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		n := NormalizeTag(name)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		normalized = append(normalized, n)
	}
	slices.Sort(normalized)
	return normalized
}
