package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
// A Caser keeps state, so a fresh one is built per call.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// FirstN returns at most n leading elements of items.
func FirstN(items []string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, n)
	copy(out, items[:n])
	return out
}

// IsHomeKey reports whether a section key names the landing section.
func IsHomeKey(key string) bool {
	return strings.EqualFold(key, "home")
}

// IsContactKey reports whether a section key names the contact section.
func IsContactKey(key string) bool {
	return strings.EqualFold(key, "contact")
}
