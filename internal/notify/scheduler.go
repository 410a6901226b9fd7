package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vaktiramazan/vakti/internal/prayer"
)

// Scheduler submits computed trigger schedules to a Store.
type Scheduler struct {
	store Store
}

// NewScheduler creates a Scheduler backed by the given store.
func NewScheduler(store Store) *Scheduler {
	return &Scheduler{store: store}
}

// ScheduleAll computes the rolling window schedule and submits every trigger
// to the store, returning the number submitted. Identifiers are
// deterministic, so re-running after a preference change overwrites the
// previous entries rather than stacking duplicates.
func (s *Scheduler) ScheduleAll(ctx context.Context, records []prayer.Record, prefs Prefs, now time.Time) (int, error) {
	triggers := BuildSchedule(records, prefs, now)

	for _, t := range triggers {
		if err := s.store.Schedule(ctx, t); err != nil {
			return 0, fmt.Errorf("scheduling %s: %w", t.Identifier, err)
		}
		log.Debug().
			Str("id", t.Identifier).
			Time("fires_at", t.FiresAt).
			Msg("scheduled notification")
	}

	log.Info().Int("count", len(triggers)).Msg("notification schedule submitted")
	return len(triggers), nil
}

// Clear cancels every stored notification.
func (s *Scheduler) Clear(ctx context.Context) error {
	if err := s.store.CancelAll(ctx); err != nil {
		return fmt.Errorf("clearing notifications: %w", err)
	}
	return nil
}

// Pending returns the stored triggers still in the future.
func (s *Scheduler) Pending(ctx context.Context, now time.Time) ([]Trigger, error) {
	return s.store.Pending(ctx, now)
}
