package ingest

import (
	"time"

	"github.com/xpc-health/rosterflow/models/roster"
)

// Rosters arrive with whatever date and time encodings the clinic staff's
// spreadsheet happened to produce. Each candidate layout is tried in priority
// order and the first full match wins; a string no layout accepts is kept
// as-is rather than rejected.
var (
	dateLayouts = []string{
		"1/2/06",     // month/day/2-digit-year
		"1/2/2006",   // month/day/4-digit-year
		"2006-01-02", // ISO
	}
	timeLayouts = []string{
		"3:04 PM",     // 12-hour
		"15:04:05 PM", // 24-hour with a stray meridiem, seen in real uploads
		"15:04:05",
		"15:04",
	}
)

// CoerceDate parses a free-text roster date. Empty or unparseable input comes
// back as a raw-string value, never an error.
func CoerceDate(s string) roster.DateValue {
	if s == "" {
		return roster.RawDate(s)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return roster.NewDate(t)
		}
	}
	return roster.RawDate(s)
}

// CoerceTime parses a free-text roster time of day, with the same raw-string
// fallback as CoerceDate.
func CoerceTime(s string) roster.TimeValue {
	if s == "" {
		return roster.RawTime(s)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return roster.NewTime(t)
		}
	}
	return roster.RawTime(s)
}
