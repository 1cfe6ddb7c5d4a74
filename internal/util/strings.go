// Package util provides common utility functions used across the codebase.
package util

import (
	"strconv"
	"strings"
)

// JoinOrDefault joins strings with ", " or returns the default value for empty slices.
func JoinOrDefault(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// CountNoun renders a count followed by the matching noun form, e.g. "1 socket"
// or "3 sockets".
func CountNoun(count int, singular, plural string) string {
	return strconv.Itoa(count) + " " + Pluralize(count, singular, plural)
}
