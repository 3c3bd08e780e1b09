// ABOUTME: Time parsing utilities for the date formats upstream sources return
// ABOUTME: Handles registry dates (20060102), ISO dates, Dutch dates and RSS timestamps

package time

import (
	"strings"
	"time"
)

// Formats seen across the registry, insolvency register and news feeds
var timeFormats = []string{
	"20060102",
	"2006-01-02",
	"02-01-2006",
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
}

// ParseFlexibleTime attempts to parse a time string using various formats
func ParseFlexibleTime(timeStr string) time.Time {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" || timeStr == "00000000" {
		return time.Time{}
	}

	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t
		}
	}

	return time.Time{}
}

// ParseDate returns nil when the string is empty or unparseable
func ParseDate(timeStr string) *time.Time {
	t := ParseFlexibleTime(timeStr)
	if t.IsZero() {
		return nil
	}
	return &t
}

// YearsBetween returns full years elapsed from start to end
func YearsBetween(start, end time.Time) int {
	years := end.Year() - start.Year()
	if end.YearDay() < start.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
