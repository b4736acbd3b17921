package normalize

import (
	"strings"
	"time"
)

// Common date formats found in EMR admission exports.
var dateFormats = []string{
	"2006-01-02",
	"20060102",
	"2006.01.02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate attempts to parse a date string in multiple common formats.
// Returns nil if the input is empty or unparseable.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// StayFromDates returns the number of calendar days between admission and discharge.
// Returns nil when either date is missing or unparseable. A discharge before the
// admission yields a negative value, which downstream scoring treats as abnormal.
func StayFromDates(admit, discharge string) *int {
	a := ParseDate(admit)
	d := ParseDate(discharge)
	if a == nil || d == nil {
		return nil
	}
	ay, am, ad := a.Date()
	dy, dm, dd := d.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	days := int(end.Sub(start).Hours() / 24)
	return &days
}
