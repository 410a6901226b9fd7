// Package dateutil provides civil date and wall-clock parsing utilities.
package dateutil

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
)

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date (local midnight).
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateString formats t as a YYYY-MM-DD civil date string.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// WallClock builds an absolute instant from an "HH:MM" string using ref's
// year, month and day in ref's location, with zero seconds.
//
// Malformed input degrades to midnight of ref's day rather than returning an
// error; prayer datasets occasionally carry broken entries and a wrong time
// beats a crash mid-display. Callers that care must validate separately.
func WallClock(s string, ref time.Time) time.Time {
	hour, minute := splitHHMM(s)
	return time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, 0, 0, ref.Location())
}

// splitHHMM parses "HH:MM" into hour and minute, returning 0,0 on any
// malformed input.
func splitHHMM(s string) (hour, minute int) {
	if len(s) < 5 || s[2] != ':' {
		return 0, 0
	}
	for _, c := range s[:2] + s[3:5] {
		if c < '0' || c > '9' {
			return 0, 0
		}
	}
	hour = int(s[0]-'0')*10 + int(s[1]-'0')
	minute = int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, 0
	}
	return hour, minute
}

// ValidWallClock reports whether s is a well-formed "HH:MM" time in
// 00:00..23:59.
func ValidWallClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return false
	}
	return true
}

// FormatDuration renders d as "HH:MM:SS", flooring to whole seconds.
// The hours field is unbounded (25h renders as "25:00:00") and zero-padded to
// two digits. Negative durations are not guarded; clamp before calling.
func FormatDuration(d time.Duration) string {
	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// MinutesOfDay converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func MinutesOfDay(s string) int {
	h, m := splitHHMM(s)
	return h*60 + m
}
