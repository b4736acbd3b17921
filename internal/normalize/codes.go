package normalize

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// NormalizeCode trims whitespace, uppercases, and strips non-alphanumeric characters,
// so "i50.9" and "I509" compare equal.
// Returns nil if the input is nil or the result is empty.
func NormalizeCode(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	s = strings.ToUpper(s)
	s = nonAlphanumeric.ReplaceAllString(s, "")
	if s == "" {
		return nil
	}
	return &s
}

// SplitCodes splits a comma- or semicolon-separated code list and normalizes each entry.
// Empty entries are dropped; order is preserved. Returns an empty, non-nil slice for nil input.
func SplitCodes(v *string) []string {
	codes := []string{}
	if v == nil {
		return codes
	}
	parts := strings.FieldsFunc(*v, func(r rune) bool {
		return r == ',' || r == ';'
	})
	for _, p := range parts {
		if c := NormalizeCode(&p); c != nil {
			codes = append(codes, *c)
		}
	}
	return codes
}
