// Package ramadan maps Hijri-dated prayer records onto the Ramadan fasting
// calendar: day indices, Bayram days, the 7-column grid and special days.
package ramadan

import (
	"context"

	"github.com/vaktiramazan/vakti/internal/prayer"
)

const (
	// BayramDays is the festival length appended after the final Ramadan day.
	BayramDays = 3
	// KadirNight is the Ramadan day tagged as Kadir Gecesi.
	KadirNight = 27
	// DefaultDayCount is assumed when no Ramadan records are available.
	DefaultDayCount = 30
)

// Tag marks special calendar days.
type Tag string

const (
	TagNone  Tag = ""
	TagKadir Tag = "kadir"
	TagArife Tag = "arife"
)

// DayOf returns the record's Ramadan day index (1..30) when the record falls
// in Ramadan, clamped to 30 for datasets that report a spillover 31st entry.
// ok is false outside Ramadan.
func DayOf(r *prayer.Record) (day int, ok bool) {
	if r == nil || r.Hijri.Month != prayer.MonthRamadan {
		return 0, false
	}
	day = r.Hijri.Day
	if day > DefaultDayCount {
		day = DefaultDayCount
	}
	if day < 1 {
		return 0, false
	}
	return day, true
}

// Filter returns the records that fall in Ramadan, in input order.
func Filter(records []prayer.Record) []prayer.Record {
	var out []prayer.Record
	for _, r := range records {
		if r.Hijri.Month == prayer.MonthRamadan {
			out = append(out, r)
		}
	}
	return out
}

// DayCount derives the Ramadan length from the dataset, defaulting to 30
// when no Ramadan records are present.
func DayCount(records []prayer.Record) int {
	if n := len(Filter(records)); n > 0 {
		return n
	}
	return DefaultDayCount
}

// BayramDate returns the civil date (YYYY-MM-DD) of the given Bayram day
// (1..3, Shawwal 1..3). ok is false when the dataset does not cover it.
func BayramDate(records []prayer.Record, bayramDay int) (string, bool) {
	if bayramDay < 1 || bayramDay > BayramDays {
		return "", false
	}
	for i := range records {
		h := records[i].Hijri
		if h.Month == prayer.MonthShawwal && h.Day == bayramDay {
			return records[i].DateKey(), true
		}
	}
	return "", false
}

// StartColumn returns the grid column (Monday=0..Sunday=6) of Ramadan day 1,
// used to left-pad the 7-column calendar. Zero when day 1 is not in the
// dataset.
func StartColumn(records []prayer.Record) int {
	for i := range records {
		h := records[i].Hijri
		if h.Month == prayer.MonthRamadan && h.Day == 1 {
			day := records[i].Day()
			if day.IsZero() {
				return 0
			}
			// time.Weekday is Sunday=0; the grid starts on Monday.
			return (int(day.Weekday()) + 6) % 7
		}
	}
	return 0
}

// SpecialDay tags a Ramadan day index. Day 27 is Kadir Gecesi and the final
// day is Arife. Fixed thresholds, not moon-sighting derived.
func SpecialDay(dayIndex, ramadanDays int) Tag {
	switch {
	case dayIndex == KadirNight:
		return TagKadir
	case dayIndex == ramadanDays:
		return TagArife
	default:
		return TagNone
	}
}

// Slot is one cell of the fasting calendar grid.
type Slot struct {
	Index     int    // 1..RamadanDays+3
	BayramDay int    // 1..3 when the slot is a Bayram day, else 0
	Date      string // YYYY-MM-DD, empty when the dataset lacks the day
	Tag       Tag
	Completed bool // fasting logged for this Ramadan day
}

// IsBayram reports whether the slot is one of the festival days.
func (s Slot) IsBayram() bool { return s.BayramDay > 0 }

// Grid is the fully derived fasting calendar.
type Grid struct {
	Slots       []Slot
	StartColumn int // left padding of the first row, Monday=0
	RamadanDays int
}

// CompletedCount returns the number of completed fasting days.
func (g Grid) CompletedCount() int {
	n := 0
	for _, s := range g.Slots {
		if s.Completed {
			n++
		}
	}
	return n
}

// BuildGrid derives the calendar grid from a record set and the persisted
// completed-day set. Slots 1..RamadanDays are fasting days; the final three
// slots are Bayram.
func BuildGrid(records []prayer.Record, completed map[int]bool) Grid {
	byDay := make(map[int]*prayer.Record)
	for i := range records {
		if d, ok := DayOf(&records[i]); ok {
			byDay[d] = &records[i]
		}
	}

	days := DayCount(records)
	g := Grid{
		StartColumn: StartColumn(records),
		RamadanDays: days,
	}

	for idx := 1; idx <= days; idx++ {
		s := Slot{
			Index:     idx,
			Tag:       SpecialDay(idx, days),
			Completed: completed[idx],
		}
		if r, ok := byDay[idx]; ok {
			s.Date = r.DateKey()
		}
		g.Slots = append(g.Slots, s)
	}

	for b := 1; b <= BayramDays; b++ {
		s := Slot{Index: days + b, BayramDay: b}
		if date, ok := BayramDate(records, b); ok {
			s.Date = date
		}
		g.Slots = append(g.Slots, s)
	}

	return g
}

// Log persists the set of completed fasting days, keyed by Hijri year so a
// new Ramadan starts from a clean slate.
type Log interface {
	// Complete marks a Ramadan day (1..30) as fasted.
	Complete(ctx context.Context, hijriYear, day int) error

	// Uncomplete removes a logged day.
	Uncomplete(ctx context.Context, hijriYear, day int) error

	// Completed returns the logged day set for a Hijri year.
	Completed(ctx context.Context, hijriYear int) (map[int]bool, error)
}
