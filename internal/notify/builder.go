package notify

import (
	"fmt"
	"time"

	"github.com/vaktiramazan/vakti/internal/dateutil"
	"github.com/vaktiramazan/vakti/internal/prayer"
)

// BuildSchedule computes every trigger implied by the preferences for the
// rolling window starting at now. Pure: no clock reads, no side effects.
//
// Triggers whose instant is not strictly in the future are dropped, which is
// the correct behavior for a scheduler that re-runs on every foreground:
// today's passed prayers are simply no longer in the schedule. Days absent
// from the record set are skipped.
func BuildSchedule(records []prayer.Record, prefs Prefs, now time.Time) []Trigger {
	var out []Trigger

	for offset := 0; offset < WindowDays; offset++ {
		day := now.AddDate(0, 0, offset)
		date := dateutil.DateString(day)

		record := prayer.FindForDate(records, date)
		if record != nil {
			out = append(out, dayTriggers(record, prefs, now, date)...)
		}

		// The verse alert needs no prayer data, only a date.
		if prefs.VerseOfDayEnabled {
			at := time.Date(day.Year(), day.Month(), day.Day(),
				prefs.VerseOfDayHour, prefs.VerseOfDayMinute, 0, 0, now.Location())
			if at.After(now) {
				out = append(out, Trigger{
					Identifier: verseID(date),
					FiresAt:    at,
					Title:      "Günün Ayeti",
					Body:       "Bugünkü ayeti okumak için dokunun.",
					Screen:     ScreenVerse,
				})
			}
		}
	}

	return out
}

// dayTriggers computes one day's prayer, sahur and iftar triggers.
func dayTriggers(record *prayer.Record, prefs Prefs, now time.Time, date string) []Trigger {
	var out []Trigger

	for _, k := range prayer.Keys {
		if !prefs.PrayerTimes[k] {
			continue
		}
		at := record.At(k, now)
		if !at.After(now) {
			continue
		}
		name := prayer.Names[k]
		out = append(out, Trigger{
			Identifier: prayerID(k, date),
			FiresAt:    at,
			Title:      fmt.Sprintf("%s vakti", name),
			Body:       fmt.Sprintf("%s vakti girdi.", name),
			Screen:     ScreenHome,
		})
	}

	if prefs.SahurMinutesBeforeImsak > 0 {
		at := record.At(prayer.KeyImsak, now).
			Add(-time.Duration(prefs.SahurMinutesBeforeImsak) * time.Minute)
		if at.After(now) {
			out = append(out, Trigger{
				Identifier: sahurID(date),
				FiresAt:    at,
				Title:      "Sahur hatırlatması",
				Body:       fmt.Sprintf("Sahura %d dakika kaldı.", prefs.SahurMinutesBeforeImsak),
				Screen:     ScreenHome,
			})
		}
	}

	if prefs.IftarEnabled {
		at := record.At(prayer.KeySunset, now)
		if at.After(now) {
			out = append(out, Trigger{
				Identifier: iftarID(date),
				FiresAt:    at,
				Title:      "İftar vakti",
				Body:       "İftar vakti girdi. Hayırlı iftarlar.",
				Screen:     ScreenHome,
			})
		}
	}

	if prefs.IftarMinutesBefore > 0 {
		at := record.At(prayer.KeySunset, now).
			Add(-time.Duration(prefs.IftarMinutesBefore) * time.Minute)
		if at.After(now) {
			out = append(out, Trigger{
				Identifier: iftarBeforeID(date),
				FiresAt:    at,
				Title:      "İftara kalan süre",
				Body:       fmt.Sprintf("İftara %d dakika kaldı.", prefs.IftarMinutesBefore),
				Screen:     ScreenHome,
			})
		}
	}

	return out
}
