// Package util provides small string helpers for command arguments.
package util

import "strings"

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// FixEscapeQuotes replaces escaped double quotes ("") with single double quotes (").
func FixEscapeQuotes(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// UnquoteArg undoes spreadsheet-style quoting: an argument wrapped in double
// quotes has the wrapping removed and its doubled quotes collapsed. Other
// arguments are only trimmed of surrounding whitespace.
func UnquoteArg(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	return FixEscapeQuotes(s[1 : len(s)-1])
}
