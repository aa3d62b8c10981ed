// Package dates provides UTC date helpers used by log records.
package dates

import (
	"fmt"
	"time"
)

// Layouts accepted by Parse, tried in order.
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02",
}

// Now returns the current instant in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// Today returns midnight UTC of the current day.
func Today() time.Time {
	return Now().Truncate(24 * time.Hour)
}

// ToUTCISOString renders t in UTC as ISO-8601 with a numeric offset,
// e.g. 2023-01-01T11:11:11+00:00. Microseconds are included only when
// non-zero.
func ToUTCISOString(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/1000 != 0 {
		return t.Format("2006-01-02T15:04:05.000000-07:00")
	}
	return t.Format("2006-01-02T15:04:05-07:00")
}

// ToShortDate renders t as YYYY-MM-DD.
func ToShortDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// Parse reads a date in one of the common layouts and returns it in UTC.
// Values without an offset are taken as UTC.
func Parse(s string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("dates: unrecognized date %q", s)
}

// FromUnix converts seconds since the epoch to a UTC time.
func FromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// ToUnix converts t to seconds since the epoch.
func ToUnix(t time.Time) int64 {
	return t.Unix()
}
