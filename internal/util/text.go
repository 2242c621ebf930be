package util

import (
	"regexp"
	"strings"
)

var (
	reSeparators = regexp.MustCompile(`[\s_\-]+`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// NormalizeHeader lowercases and collapses whitespace, underscore and
// hyphen runs to single spaces so header and synonym texts compare
// on equal footing.
func NormalizeHeader(input string) string {
	s := strings.ToLower(input)
	s = reSeparators.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeSpaces collapses whitespace runs without touching case.
func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

func StringPtr(v string) *string  { return &v }
func FloatPtr(v float64) *float64 { return &v }
