package parser

import (
	"fmt"
	"strings"
	"time"
)

// Layouts are the timestamp layouts accepted in CSV columns and bracketed
// log prefixes, tried in order. Timestamps without a zone are read as UTC.
var Layouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02-Jan-2006 15:04:05",
	"02 Jan 2006 15:04:05",
	"Jan 2 2006 15:04:05",
	"Jan 2, 2006 15:04:05",
	time.ANSIC,
}

// ParseTimestamp parses s against Layouts. Runs of whitespace are
// collapsed first, so "2025-01-01   00:00:00" is accepted.
func ParseTimestamp(s string) (time.Time, error) {
	normalized := strings.Join(strings.Fields(s), " ")
	if normalized == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range Layouts {
		if ts, err := time.Parse(layout, normalized); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("parsing timestamp %q: no known layout matched", s)
}
