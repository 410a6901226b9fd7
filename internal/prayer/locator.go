package prayer

import (
	"time"

	"github.com/vaktiramazan/vakti/internal/dateutil"
)

// FindForDate returns the first record whose civil date matches the given
// YYYY-MM-DD string, or nil if none does. Linear scan: record lists are one
// month or one year of days, an index would be noise.
func FindForDate(records []Record, date string) *Record {
	if len(date) > 10 {
		date = date[:10]
	}
	for i := range records {
		if records[i].DateKey() == date {
			return &records[i]
		}
	}
	return nil
}

// Daily holds the records the live display needs.
type Daily struct {
	Today    *Record
	Tomorrow *Record
	// Fallback is set when no record matched today's date and Today was
	// substituted with the first record in the list. The data shown is for
	// the wrong day; callers should surface that instead of hiding it.
	Fallback bool
}

// DailyRecords locates today's and tomorrow's records relative to now.
// If today has no match the first record is substituted (Fallback set) so the
// display degrades to stale data instead of disappearing.
func DailyRecords(records []Record, now time.Time) Daily {
	today := dateutil.DateString(now)
	tomorrow := dateutil.DateString(now.AddDate(0, 0, 1))

	d := Daily{
		Today:    FindForDate(records, today),
		Tomorrow: FindForDate(records, tomorrow),
	}
	if d.Today == nil && len(records) > 0 {
		d.Today = &records[0]
		d.Fallback = true
	}
	return d
}
