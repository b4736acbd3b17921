package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// CleanText collapses whitespace and trims the input. Case is preserved because
// department names must match the encoder tables stored in model artifacts.
// Returns nil if the input is nil or the result is empty.
func CleanText(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	s = multiSpace.ReplaceAllString(s, " ")
	return &s
}
