package normalize

import (
	"strings"
	"time"
)

// Date layouts accepted from upstream sources, tried in order. The sources
// mix ISO-8601, space-separated timestamps and Turkish day-first forms.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006 15:04:05",
	"02.01.2006",
	"02/01/2006",
}

// ParseDate parses a raw date string into a time. Unparseable or empty input
// yields nil; parsing never fails the record it belongs to.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0001-01-01T00:00:00" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
