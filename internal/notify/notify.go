// Package notify computes and submits local notification triggers for prayer
// times, sahur/iftar reminders and the verse of the day.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/vaktiramazan/vakti/internal/prayer"
)

// WindowDays is the rolling look-ahead for scheduled notifications. The
// scheduler re-runs on every app start, so a week of coverage is enough.
const WindowDays = 7

// Screen routing hints carried in trigger payloads.
const (
	ScreenHome  = "home"
	ScreenVerse = "verse"
)

// Prefs is the user's notification configuration. Always fully populated;
// zero offsets mean the corresponding reminder is off.
type Prefs struct {
	// PrayerTimes enables the at-time alert per prayer.
	PrayerTimes map[prayer.Key]bool
	// SahurMinutesBeforeImsak is one of 0, 15, 30, 45, 60 (0 = off).
	SahurMinutesBeforeImsak int
	// IftarEnabled fires an alert exactly at sunset.
	IftarEnabled bool
	// IftarMinutesBefore is one of 0, 15, 30 (0 = off).
	IftarMinutesBefore int
	VerseOfDayEnabled  bool
	VerseOfDayHour     int // 0-23
	VerseOfDayMinute   int // 0-59
}

// DefaultPrefs returns the out-of-the-box notification configuration:
// every prayer except sunrise, sahur 30 minutes early, iftar at and 15
// minutes before sunset, verse of the day off.
func DefaultPrefs() Prefs {
	return Prefs{
		PrayerTimes: map[prayer.Key]bool{
			prayer.KeyImsak:     true,
			prayer.KeySunrise:   false,
			prayer.KeyNoon:      true,
			prayer.KeyAfternoon: true,
			prayer.KeySunset:    true,
			prayer.KeyNight:     true,
		},
		SahurMinutesBeforeImsak: 30,
		IftarEnabled:            true,
		IftarMinutesBefore:      15,
		VerseOfDayEnabled:       false,
		VerseOfDayHour:          8,
		VerseOfDayMinute:        0,
	}
}

// Trigger is a single notification to be delivered at an absolute instant.
// Identifiers are deterministic per (kind, date): re-running the scheduler
// addresses the same entries instead of duplicating them.
type Trigger struct {
	Identifier string
	FiresAt    time.Time
	Title      string
	Body       string
	Screen     string // routing hint for the tap action
}

// Store is the platform notification store. Schedule must upsert by
// identifier: submitting an identifier that is already scheduled replaces
// the stored trigger. That contract is what makes the rolling scheduler
// idempotent.
type Store interface {
	Schedule(ctx context.Context, t Trigger) error
	Cancel(ctx context.Context, identifier string) error
	CancelAll(ctx context.Context) error

	// Pending returns stored triggers firing after now, soonest first.
	Pending(ctx context.Context, now time.Time) ([]Trigger, error)
}

// Identifier builders. Stable formats, persisted in the store.
func prayerID(k prayer.Key, date string) string { return fmt.Sprintf("prayer-%s-%s", k, date) }
func sahurID(date string) string                { return "sahur-" + date }
func iftarID(date string) string                { return "iftar-" + date }
func iftarBeforeID(date string) string          { return "iftar-before-" + date }
func verseID(date string) string                { return "verse-" + date }
