package fasting

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vaktiramazan/vakti/internal/dateutil"
	"github.com/vaktiramazan/vakti/internal/prayer"
)

// Reminder kinds, embedded in the once-per-day flag keys.
const (
	ReminderIftar = "iftar"
	ReminderSahur = "sahur"
)

// Flags is the persistence hook for once-per-day reminder delivery.
// Read failures are treated as "not shown"; write failures are logged and
// swallowed. A duplicate reminder beats a crash.
type Flags interface {
	WasShown(kind, date string) (bool, error)
	MarkShown(kind, date string) error
}

// Reminder is an in-app alert due right now.
type Reminder struct {
	Kind  string
	Title string
	Body  string
}

// FlagKey builds the persisted flag key for a reminder occurrence.
func FlagKey(kind, date string) string {
	return fmt.Sprintf("%s_shown_%s", kind, date)
}

// DueReminders returns the in-app reminders due at now, marking each as
// shown so the same occurrence never fires twice on one day.
//
// This is the best-effort foreground path behind the OS-level scheduler: it
// compares wall-clock minutes, so a poll gap longer than a minute can miss
// an occurrence. sahurMinutes is the minutes-before-imsak offset (0 = off),
// iftarEnabled gates the at-sunset reminder.
func DueReminders(now time.Time, today *prayer.Record, sahurMinutes int, iftarEnabled bool, flags Flags) []Reminder {
	if today == nil {
		return nil
	}

	date := dateutil.DateString(now)
	nowClock := now.Format("15:04")
	var due []Reminder

	if iftarEnabled && nowClock == today.Times.Sunset {
		if r, ok := claim(ReminderIftar, date, flags); ok {
			r.Title = "İftar vakti"
			r.Body = "İftar vakti girdi. Hayırlı iftarlar."
			due = append(due, r)
		}
	}

	if sahurMinutes > 0 {
		sahurAt := today.At(prayer.KeyImsak, now).Add(-time.Duration(sahurMinutes) * time.Minute)
		if nowClock == sahurAt.Format("15:04") {
			if r, ok := claim(ReminderSahur, date, flags); ok {
				r.Title = "Sahur hatırlatması"
				r.Body = fmt.Sprintf("Sahura %d dakika kaldı.", sahurMinutes)
				due = append(due, r)
			}
		}
	}

	return due
}

// claim checks and sets the once-per-day flag for a reminder occurrence.
func claim(kind, date string, flags Flags) (Reminder, bool) {
	shown, err := flags.WasShown(kind, date)
	if err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("reading reminder flag")
	}
	if shown {
		return Reminder{}, false
	}
	if err := flags.MarkShown(kind, date); err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("writing reminder flag")
	}
	return Reminder{Kind: kind}, true
}
