// Package prayer defines the core domain types for daily prayer times.
package prayer

import (
	"errors"
	"fmt"
	"time"

	"github.com/vaktiramazan/vakti/internal/dateutil"
)

// Validation errors.
var (
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrTimesNotOrdered   = errors.New("prayer times must increase within the day")
)

// Key identifies one of the six daily prayer times. The values follow the
// Diyanet dataset naming and are stable: they are embedded in notification
// identifiers and must not change between releases.
type Key string

const (
	KeyImsak     Key = "imsak"
	KeySunrise   Key = "gunes"
	KeyNoon      Key = "ogle"
	KeyAfternoon Key = "ikindi"
	KeySunset    Key = "aksam"
	KeyNight     Key = "yatsi"
)

// Keys lists all prayer keys in chronological order.
var Keys = []Key{KeyImsak, KeySunrise, KeyNoon, KeyAfternoon, KeySunset, KeyNight}

// Names maps prayer keys to their display names.
var Names = map[Key]string{
	KeyImsak:     "İmsak",
	KeySunrise:   "Güneş",
	KeyNoon:      "Öğle",
	KeyAfternoon: "İkindi",
	KeySunset:    "Akşam (İftar)",
	KeyNight:     "Yatsı",
}

// Times holds one day's six prayer times as "HH:MM" wall-clock strings.
// The JSON tags match the Diyanet offline dataset format.
type Times struct {
	Imsak     string `json:"imsak"`
	Sunrise   string `json:"gunes"`
	Noon      string `json:"ogle"`
	Afternoon string `json:"ikindi"`
	Sunset    string `json:"aksam"`
	Night     string `json:"yatsi"`
}

// ByKey returns the wall-clock string for the given prayer key.
func (t Times) ByKey(k Key) string {
	switch k {
	case KeyImsak:
		return t.Imsak
	case KeySunrise:
		return t.Sunrise
	case KeyNoon:
		return t.Noon
	case KeyAfternoon:
		return t.Afternoon
	case KeySunset:
		return t.Sunset
	case KeyNight:
		return t.Night
	default:
		return ""
	}
}

// Validate checks that all six times are well-formed and strictly increasing
// within the day (imsak < sunrise < noon < afternoon < sunset < night).
func (t Times) Validate() error {
	prev := -1
	for _, k := range Keys {
		s := t.ByKey(k)
		if !dateutil.ValidWallClock(s) {
			return fmt.Errorf("%s %q: %w", k, s, ErrInvalidTimeFormat)
		}
		m := dateutil.MinutesOfDay(s)
		if m <= prev {
			return fmt.Errorf("%s %q: %w", k, s, ErrTimesNotOrdered)
		}
		prev = m
	}
	return nil
}

// HijriDate is the Islamic calendar date attached to a record.
type HijriDate struct {
	Day       int    `json:"day"`
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	Year      int    `json:"year"`
}

// Hijri month numbers with special handling.
const (
	MonthRamadan = 9
	MonthShawwal = 10
)

// Record is one calendar day's prayer data. Records are created by a data
// source at load time and never mutated afterwards.
type Record struct {
	Date  string    `json:"date"` // YYYY-MM-DD, local civil date
	Hijri HijriDate `json:"hijri_date"`
	Times Times     `json:"times"`
}

// Day returns the record's civil date as local midnight.
// The zero time is returned for malformed dates.
func (r *Record) Day() time.Time {
	d, err := dateutil.ParseDate(r.DateKey())
	if err != nil {
		return time.Time{}
	}
	return d
}

// DateKey returns the first ten characters of the date field (YYYY-MM-DD),
// tolerating ISO strings with a time suffix.
func (r *Record) DateKey() string {
	if len(r.Date) > 10 {
		return r.Date[:10]
	}
	return r.Date
}

// At returns the absolute instant of the given prayer on the record's day,
// anchored to ref's location.
func (r *Record) At(k Key, ref time.Time) time.Time {
	day := r.Day()
	if day.IsZero() {
		day = dateutil.TruncateToDay(ref)
	}
	return dateutil.WallClock(r.Times.ByKey(k), day.In(ref.Location()))
}
