package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/vaktiramazan/vakti/internal/notify"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestScheduleAndPending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 18, 12, 0, 0, 0, time.Local)

	triggers := []notify.Trigger{
		{Identifier: "prayer-aksam-2026-02-18", FiresAt: now.Add(6 * time.Hour), Title: "Akşam", Body: "b"},
		{Identifier: "sahur-2026-02-19", FiresAt: now.Add(17 * time.Hour), Title: "Sahur", Body: "b"},
		{Identifier: "prayer-imsak-2026-02-18", FiresAt: now.Add(-7 * time.Hour), Title: "İmsak", Body: "b"},
	}
	for _, tr := range triggers {
		if err := s.Schedule(ctx, tr); err != nil {
			t.Fatalf("Schedule(%s): %v", tr.Identifier, err)
		}
	}

	pending, err := s.Pending(ctx, now)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending, want 2 (past trigger excluded)", len(pending))
	}
	// Soonest first.
	if pending[0].Identifier != "prayer-aksam-2026-02-18" {
		t.Errorf("pending[0] = %q, want prayer-aksam-2026-02-18", pending[0].Identifier)
	}
	if !pending[0].FiresAt.Equal(now.Add(6 * time.Hour)) {
		t.Errorf("fires_at not round-tripped: %v", pending[0].FiresAt)
	}
}

func TestSchedule_UpsertsByIdentifier(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 18, 12, 0, 0, 0, time.Local)

	first := notify.Trigger{
		Identifier: "iftar-2026-02-18",
		FiresAt:    now.Add(time.Hour),
		Title:      "İftar",
		Body:       "old",
	}
	if err := s.Schedule(ctx, first); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	second := first
	second.FiresAt = now.Add(2 * time.Hour)
	second.Body = "new"
	if err := s.Schedule(ctx, second); err != nil {
		t.Fatalf("Schedule (replace): %v", err)
	}

	pending, err := s.Pending(ctx, now)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("got %d pending, want 1 after upsert", len(pending))
	}
	if pending[0].Body != "new" || !pending[0].FiresAt.Equal(second.FiresAt) {
		t.Errorf("upsert did not replace: %+v", pending[0])
	}
}

func TestCancel(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 18, 12, 0, 0, 0, time.Local)

	tr := notify.Trigger{Identifier: "verse-2026-02-18", FiresAt: now.Add(time.Hour), Title: "t", Body: "b"}
	if err := s.Schedule(ctx, tr); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if err := s.Cancel(ctx, tr.Identifier); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	// Unknown identifier is not an error.
	if err := s.Cancel(ctx, "no-such-id"); err != nil {
		t.Errorf("Cancel(unknown): %v", err)
	}

	pending, err := s.Pending(ctx, now)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("got %d pending, want 0", len(pending))
	}
}

func TestCancelAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 18, 12, 0, 0, 0, time.Local)

	for _, id := range []string{"a", "b", "c"} {
		tr := notify.Trigger{Identifier: id, FiresAt: now.Add(time.Hour), Title: "t", Body: "b"}
		if err := s.Schedule(ctx, tr); err != nil {
			t.Fatalf("Schedule: %v", err)
		}
	}

	if err := s.CancelAll(ctx); err != nil {
		t.Fatalf("CancelAll: %v", err)
	}

	pending, err := s.Pending(ctx, now)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("got %d pending, want 0", len(pending))
	}
}

func TestFastingLog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Complete(ctx, 1447, 1); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := s.Complete(ctx, 1447, 5); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	// Logging the same day twice is a no-op.
	if err := s.Complete(ctx, 1447, 5); err != nil {
		t.Fatalf("Complete (repeat): %v", err)
	}
	// A different Hijri year is a separate log.
	if err := s.Complete(ctx, 1446, 12); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	days, err := s.Completed(ctx, 1447)
	if err != nil {
		t.Fatalf("Completed: %v", err)
	}
	if len(days) != 2 || !days[1] || !days[5] {
		t.Errorf("completed days = %v, want {1,5}", days)
	}

	if err := s.Uncomplete(ctx, 1447, 5); err != nil {
		t.Fatalf("Uncomplete: %v", err)
	}
	days, err = s.Completed(ctx, 1447)
	if err != nil {
		t.Fatalf("Completed: %v", err)
	}
	if len(days) != 1 || !days[1] {
		t.Errorf("completed days after removal = %v, want {1}", days)
	}
}

func TestFastingLog_RejectsOutOfRangeDay(t *testing.T) {
	s := newTestStore(t)

	if err := s.Complete(context.Background(), 1447, 31); err == nil {
		t.Error("Complete(31) succeeded, want CHECK constraint error")
	}
}

func TestReminderFlags(t *testing.T) {
	s := newTestStore(t)

	shown, err := s.WasShown("iftar", "2026-02-18")
	if err != nil {
		t.Fatalf("WasShown: %v", err)
	}
	if shown {
		t.Error("fresh store reports reminder already shown")
	}

	if err := s.MarkShown("iftar", "2026-02-18"); err != nil {
		t.Fatalf("MarkShown: %v", err)
	}

	shown, err = s.WasShown("iftar", "2026-02-18")
	if err != nil {
		t.Fatalf("WasShown: %v", err)
	}
	if !shown {
		t.Error("reminder not marked as shown")
	}

	// Other kinds and dates stay independent.
	if shown, _ := s.WasShown("sahur", "2026-02-18"); shown {
		t.Error("sahur flag leaked from iftar flag")
	}
	if shown, _ := s.WasShown("iftar", "2026-02-19"); shown {
		t.Error("next-day flag leaked from today's flag")
	}
}

func TestKV(t *testing.T) {
	s := newTestStore(t)

	v, err := s.Get("last_verse_id")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "" {
		t.Errorf("missing key = %q, want empty", v)
	}

	if err := s.Set("last_verse_id", "7"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("last_verse_id", "9"); err != nil {
		t.Fatalf("Set (replace): %v", err)
	}

	v, err = s.Get("last_verse_id")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "9" {
		t.Errorf("got %q, want 9", v)
	}
}
