package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s`.
func CleanString(s string) string {
	return strings.TrimSpace(s)
}

// CleanEmail normalizes an email the way the auth forms submit it: trimmed
// and lowercased, so the same address always matches server-side.
func CleanEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
