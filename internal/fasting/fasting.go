// Package fasting computes the live fasting countdown and day-phase state.
package fasting

import (
	"time"

	"github.com/vaktiramazan/vakti/internal/dateutil"
	"github.com/vaktiramazan/vakti/internal/prayer"
)

// Phase is the part of the fasting day the clock is currently in.
type Phase string

const (
	// PhaseBeforeDawn runs from the previous iftar until today's imsak.
	PhaseBeforeDawn Phase = "before_dawn"
	// PhaseFasting runs from imsak until sunset.
	PhaseFasting Phase = "fasting"
	// PhaseAfterIftar runs from sunset until tomorrow's imsak.
	PhaseAfterIftar Phase = "after_iftar"
)

// Status is the countdown state at a single instant. It is recomputed from
// scratch on every tick; nothing is retained between calls.
type Status struct {
	Phase     Phase
	Target    time.Time     // next phase boundary
	Remaining time.Duration // time until Target, never negative
	// Progress is the remaining fraction of the current phase: 1 at the
	// phase start, 0 at the boundary. The display renders it as a
	// shrinking ring.
	Progress float64
	// Degraded is set when the data needed for the current phase is
	// missing (no today record, or after iftar with no tomorrow record).
	// Remaining and Progress are zero in that case.
	Degraded bool
}

// Clock renders the remaining time as "HH:MM:SS", or "--:--:--" when
// degraded.
func (s Status) Clock() string {
	if s.Degraded {
		return "--:--:--"
	}
	return dateutil.FormatDuration(s.Remaining)
}

// Evaluate computes the countdown state for now given today's and tomorrow's
// records. Pure: time is injected, no clock reads.
//
// Boundary semantics: now == sunset is already PhaseAfterIftar, now == imsak
// is already PhaseFasting.
func Evaluate(now time.Time, today, tomorrow *prayer.Record) Status {
	if today == nil {
		return Status{Phase: PhaseBeforeDawn, Degraded: true}
	}

	imsak := today.At(prayer.KeyImsak, now)
	sunset := today.At(prayer.KeySunset, now)

	switch {
	case now.Before(imsak):
		// Previous iftar approximated as today's iftar minus a day when
		// no previous-day record is around; good enough for a progress
		// ring.
		prevIftar := sunset.Add(-24 * time.Hour)
		return status(PhaseBeforeDawn, now, prevIftar, imsak)

	case now.Before(sunset):
		return status(PhaseFasting, now, imsak, sunset)

	default:
		if tomorrow == nil {
			return Status{Phase: PhaseAfterIftar, Degraded: true}
		}
		nextImsak := tomorrow.At(prayer.KeyImsak, now)
		return status(PhaseAfterIftar, now, sunset, nextImsak)
	}
}

// status builds a Status for a phase spanning [start, end) with now inside.
func status(p Phase, now, start, end time.Time) Status {
	s := Status{
		Phase:     p,
		Target:    end,
		Remaining: end.Sub(now),
	}
	if s.Remaining < 0 {
		s.Remaining = 0
	}

	total := end.Sub(start)
	if total <= 0 {
		return s
	}
	s.Progress = clamp01(float64(s.Remaining) / float64(total))
	return s
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
