package fasting

import (
	"testing"
	"time"

	"github.com/vaktiramazan/vakti/internal/prayer"
)

func record(date string) *prayer.Record {
	return &prayer.Record{
		Date: date,
		Times: prayer.Times{
			Imsak:     "05:30",
			Sunrise:   "06:55",
			Noon:      "13:10",
			Afternoon: "16:20",
			Sunset:    "18:40",
			Night:     "20:05",
		},
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.Local)
}

func TestEvaluate_Fasting(t *testing.T) {
	today := record("2026-03-02")
	now := at(12, 0)

	s := Evaluate(now, today, record("2026-03-03"))

	if s.Phase != PhaseFasting {
		t.Fatalf("phase = %s, want fasting", s.Phase)
	}
	want := 6*time.Hour + 40*time.Minute
	if s.Remaining != want {
		t.Errorf("remaining = %v, want %v", s.Remaining, want)
	}
	if s.Progress <= 0 || s.Progress >= 1 {
		t.Errorf("progress = %v, want strictly between 0 and 1", s.Progress)
	}
	if s.Clock() != "06:40:00" {
		t.Errorf("clock = %q, want 06:40:00", s.Clock())
	}
}

func TestEvaluate_Boundaries(t *testing.T) {
	today := record("2026-03-02")
	tomorrow := record("2026-03-03")

	t.Run("exactly at sunset is after iftar", func(t *testing.T) {
		s := Evaluate(at(18, 40), today, tomorrow)
		if s.Phase != PhaseAfterIftar {
			t.Errorf("phase = %s, want after_iftar", s.Phase)
		}
	})

	t.Run("exactly at imsak is fasting", func(t *testing.T) {
		s := Evaluate(at(5, 30), today, tomorrow)
		if s.Phase != PhaseFasting {
			t.Errorf("phase = %s, want fasting", s.Phase)
		}
	})

	t.Run("one minute before imsak is before dawn", func(t *testing.T) {
		s := Evaluate(at(5, 29), today, tomorrow)
		if s.Phase != PhaseBeforeDawn {
			t.Errorf("phase = %s, want before_dawn", s.Phase)
		}
		if s.Remaining != time.Minute {
			t.Errorf("remaining = %v, want 1m", s.Remaining)
		}
	})
}

func TestEvaluate_BeforeDawnProgress(t *testing.T) {
	// Previous iftar approximated as today's sunset minus 24h (18:40
	// yesterday). At 05:30 - small the window is nearly spent.
	today := record("2026-03-02")
	s := Evaluate(at(5, 0), today, nil)

	if s.Phase != PhaseBeforeDawn {
		t.Fatalf("phase = %s, want before_dawn", s.Phase)
	}
	if s.Degraded {
		t.Fatal("before dawn must not need tomorrow's record")
	}
	if s.Remaining != 30*time.Minute {
		t.Errorf("remaining = %v, want 30m", s.Remaining)
	}
	// 30 minutes left of a 10h50m window.
	if s.Progress > 0.1 || s.Progress <= 0 {
		t.Errorf("progress = %v, want small but positive", s.Progress)
	}
}

func TestEvaluate_AfterIftar(t *testing.T) {
	today := record("2026-03-02")
	tomorrow := record("2026-03-03")

	t.Run("counts down to tomorrow's imsak", func(t *testing.T) {
		s := Evaluate(at(22, 0), today, tomorrow)
		if s.Phase != PhaseAfterIftar {
			t.Fatalf("phase = %s, want after_iftar", s.Phase)
		}
		want := 7*time.Hour + 30*time.Minute // 22:00 -> 05:30 next day
		if s.Remaining != want {
			t.Errorf("remaining = %v, want %v", s.Remaining, want)
		}
	})

	t.Run("no tomorrow record degrades", func(t *testing.T) {
		s := Evaluate(at(22, 0), today, nil)
		if !s.Degraded {
			t.Fatal("want degraded status")
		}
		if s.Remaining != 0 || s.Progress != 0 {
			t.Errorf("remaining = %v progress = %v, want zeros", s.Remaining, s.Progress)
		}
		if s.Clock() != "--:--:--" {
			t.Errorf("clock = %q, want --:--:--", s.Clock())
		}
	})
}

func TestEvaluate_NoTodayRecord(t *testing.T) {
	s := Evaluate(at(12, 0), nil, nil)
	if !s.Degraded {
		t.Fatal("want degraded status")
	}
	if s.Clock() != "--:--:--" {
		t.Errorf("clock = %q, want --:--:--", s.Clock())
	}
}

type memFlags struct {
	shown map[string]bool
}

func newMemFlags() *memFlags { return &memFlags{shown: make(map[string]bool)} }

func (f *memFlags) WasShown(kind, date string) (bool, error) {
	return f.shown[FlagKey(kind, date)], nil
}

func (f *memFlags) MarkShown(kind, date string) error {
	f.shown[FlagKey(kind, date)] = true
	return nil
}

func TestDueReminders(t *testing.T) {
	today := record("2026-03-02")

	t.Run("iftar fires once at sunset minute", func(t *testing.T) {
		flags := newMemFlags()
		due := DueReminders(at(18, 40), today, 0, true, flags)
		if len(due) != 1 || due[0].Kind != ReminderIftar {
			t.Fatalf("due = %+v, want one iftar reminder", due)
		}

		again := DueReminders(at(18, 40), today, 0, true, flags)
		if len(again) != 0 {
			t.Errorf("second poll returned %+v, want none", again)
		}
	})

	t.Run("sahur fires at offset before imsak", func(t *testing.T) {
		flags := newMemFlags()
		// imsak 05:30, 30 minutes before = 05:00
		due := DueReminders(at(5, 0), today, 30, false, flags)
		if len(due) != 1 || due[0].Kind != ReminderSahur {
			t.Fatalf("due = %+v, want one sahur reminder", due)
		}
	})

	t.Run("nothing due off the minute", func(t *testing.T) {
		flags := newMemFlags()
		if due := DueReminders(at(12, 0), today, 30, true, flags); len(due) != 0 {
			t.Errorf("due = %+v, want none", due)
		}
	})

	t.Run("disabled preferences produce nothing", func(t *testing.T) {
		flags := newMemFlags()
		if due := DueReminders(at(18, 40), today, 0, false, flags); len(due) != 0 {
			t.Errorf("due = %+v, want none", due)
		}
	})

	t.Run("nil record produces nothing", func(t *testing.T) {
		if due := DueReminders(at(18, 40), nil, 30, true, newMemFlags()); due != nil {
			t.Errorf("due = %+v, want nil", due)
		}
	})
}
