package prayer

import (
	"time"

	"github.com/vaktiramazan/vakti/internal/dateutil"
)

// Entry is one row of the prayer times display list.
type Entry struct {
	Key    Key
	Name   string
	Time   string // "HH:MM"
	Active bool   // next upcoming prayer
}

// DisplayList maps a day's times to display rows, marking the next upcoming
// prayer as active. When every prayer has passed, imsak is marked active
// (the list wraps to the next morning).
func DisplayList(t Times, now time.Time) []Entry {
	nowMinutes := now.Hour()*60 + now.Minute()

	active := Key("")
	for _, k := range Keys {
		if nowMinutes < dateutil.MinutesOfDay(t.ByKey(k)) {
			active = k
			break
		}
	}
	if active == "" {
		active = KeyImsak
	}

	entries := make([]Entry, 0, len(Keys))
	for _, k := range Keys {
		entries = append(entries, Entry{
			Key:    k,
			Name:   Names[k],
			Time:   t.ByKey(k),
			Active: k == active,
		})
	}
	return entries
}

// Next returns the next upcoming prayer on the record's day strictly after
// now, or ok=false when every prayer has passed.
func Next(r *Record, now time.Time) (Key, time.Time, bool) {
	for _, k := range Keys {
		at := r.At(k, now)
		if at.After(now) {
			return k, at, true
		}
	}
	return "", time.Time{}, false
}
