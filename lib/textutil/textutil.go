package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseSpace trims the string and squashes any run of whitespace
// (including newlines from table cells) into a single space.
func CollapseSpace(s string) string {
	s = strings.Trim(s, " \n\t")
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// ContainsAny reports whether the lower-cased haystack contains
// any of the given lower-case needles.
func ContainsAny(haystack string, needles []string) bool {
	haystack = strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// Excerpt collapses whitespace and cuts the text off at max runes.
// Used when we have to return raw page text instead of a parsed value.
func Excerpt(s string, max int) string {
	s = CollapseSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
