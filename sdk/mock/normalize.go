package mock

import (
	"slices"
	"strings"
)

// AnyPath is the registry key matched when no path-specific entry exists.
const AnyPath = "*"

// Normalize sorts the query tokens of path so that the same parameters in a
// different order produce the same key. Tokens are compared as whole
// "key=value" strings; nothing is unescaped or case-folded.
func Normalize(path string) string {
	base, query, ok := strings.Cut(path, "?")
	if !ok {
		return path
	}
	tokens := strings.Split(query, "&")
	slices.Sort(tokens)
	return base + "?" + strings.Join(tokens, "&")
}
