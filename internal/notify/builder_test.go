package notify

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/vaktiramazan/vakti/internal/dateutil"
	"github.com/vaktiramazan/vakti/internal/prayer"
)

// week builds records for WindowDays consecutive days starting at start.
func week(start time.Time) []prayer.Record {
	var records []prayer.Record
	for i := 0; i < WindowDays; i++ {
		records = append(records, prayer.Record{
			Date: dateutil.DateString(start.AddDate(0, 0, i)),
			Times: prayer.Times{
				Imsak: "05:30", Sunrise: "06:55", Noon: "13:10",
				Afternoon: "16:20", Sunset: "18:40", Night: "20:05",
			},
		})
	}
	return records
}

func allOff() Prefs {
	p := DefaultPrefs()
	for k := range p.PrayerTimes {
		p.PrayerTimes[k] = false
	}
	p.SahurMinutesBeforeImsak = 0
	p.IftarEnabled = false
	p.IftarMinutesBefore = 0
	p.VerseOfDayEnabled = false
	return p
}

func TestBuildSchedule_AllDisabled(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	if got := BuildSchedule(week(now), allOff(), now); len(got) != 0 {
		t.Errorf("got %d triggers, want 0", len(got))
	}
}

func TestBuildSchedule_Defaults(t *testing.T) {
	// Midnight start: every trigger of the day is still in the future.
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	triggers := BuildSchedule(week(now), DefaultPrefs(), now)

	// Per day: 5 prayers (sunrise off) + sahur + iftar + iftar-before = 8.
	want := WindowDays * 8
	if len(triggers) != want {
		t.Fatalf("got %d triggers, want %d", len(triggers), want)
	}

	for _, tr := range triggers {
		if !tr.FiresAt.After(now) {
			t.Errorf("%s fires at %v, not in the future", tr.Identifier, tr.FiresAt)
		}
		if tr.Title == "" || tr.Body == "" {
			t.Errorf("%s has an empty payload", tr.Identifier)
		}
	}
}

func TestBuildSchedule_SkipsPast(t *testing.T) {
	// 19:00: today's sunset (18:40) and everything before it has passed,
	// only tonight's yatsi (20:05) remains of day zero.
	now := time.Date(2026, 3, 2, 19, 0, 0, 0, time.Local)
	triggers := BuildSchedule(week(now), DefaultPrefs(), now)

	today := dateutil.DateString(now)
	var todayIDs []string
	for _, tr := range triggers {
		if strings.HasSuffix(tr.Identifier, today) {
			todayIDs = append(todayIDs, tr.Identifier)
		}
	}

	if len(todayIDs) != 1 || todayIDs[0] != "prayer-yatsi-"+today {
		t.Errorf("today's surviving triggers = %v, want only prayer-yatsi", todayIDs)
	}
}

func TestBuildSchedule_Identifiers(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	prefs := DefaultPrefs()
	prefs.VerseOfDayEnabled = true

	first := BuildSchedule(week(now), prefs, now)
	second := BuildSchedule(week(now), prefs, now)

	ids := func(ts []Trigger) []string {
		var out []string
		for _, tr := range ts {
			out = append(out, tr.Identifier)
		}
		sort.Strings(out)
		return out
	}

	a, b := ids(first), ids(second)
	if len(a) != len(b) {
		t.Fatalf("runs differ in size: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("identifier mismatch at %d: %q vs %q", i, a[i], b[i])
		}
	}

	// No duplicate identifiers within one run.
	seen := make(map[string]bool)
	for _, id := range a {
		if seen[id] {
			t.Errorf("duplicate identifier %q", id)
		}
		seen[id] = true
	}
}

func TestBuildSchedule_SahurOffset(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	prefs := allOff()
	prefs.SahurMinutesBeforeImsak = 45

	triggers := BuildSchedule(week(now), prefs, now)
	if len(triggers) != WindowDays {
		t.Fatalf("got %d triggers, want %d", len(triggers), WindowDays)
	}

	first := triggers[0]
	want := time.Date(2026, 3, 2, 4, 45, 0, 0, time.Local) // 05:30 - 45m
	if !first.FiresAt.Equal(want) {
		t.Errorf("sahur fires at %v, want %v", first.FiresAt, want)
	}
	if first.Identifier != "sahur-2026-03-02" {
		t.Errorf("identifier = %q", first.Identifier)
	}
}

func TestBuildSchedule_VerseWithoutRecords(t *testing.T) {
	// The verse alert only needs a date, so an empty record set still
	// yields a full window of verse triggers.
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	prefs := allOff()
	prefs.VerseOfDayEnabled = true
	prefs.VerseOfDayHour = 8
	prefs.VerseOfDayMinute = 30

	triggers := BuildSchedule(nil, prefs, now)
	if len(triggers) != WindowDays {
		t.Fatalf("got %d triggers, want %d", len(triggers), WindowDays)
	}
	if triggers[0].Identifier != "verse-2026-03-02" {
		t.Errorf("identifier = %q", triggers[0].Identifier)
	}
	if triggers[0].FiresAt.Hour() != 8 || triggers[0].FiresAt.Minute() != 30 {
		t.Errorf("fires at %v, want 08:30", triggers[0].FiresAt)
	}
	if triggers[0].Screen != ScreenVerse {
		t.Errorf("screen = %q, want %q", triggers[0].Screen, ScreenVerse)
	}
}

func TestBuildSchedule_MissingDaysSkipped(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	records := week(now)[:2] // only today and tomorrow

	triggers := BuildSchedule(records, DefaultPrefs(), now)
	if len(triggers) != 2*8 {
		t.Errorf("got %d triggers, want %d", len(triggers), 2*8)
	}
}

// memStore is an in-memory Store with upsert-by-identifier semantics.
type memStore struct {
	triggers map[string]Trigger
}

func newMemStore() *memStore { return &memStore{triggers: make(map[string]Trigger)} }

func (m *memStore) Schedule(_ context.Context, t Trigger) error {
	m.triggers[t.Identifier] = t
	return nil
}

func (m *memStore) Cancel(_ context.Context, id string) error {
	delete(m.triggers, id)
	return nil
}

func (m *memStore) CancelAll(_ context.Context) error {
	m.triggers = make(map[string]Trigger)
	return nil
}

func (m *memStore) Pending(_ context.Context, now time.Time) ([]Trigger, error) {
	var out []Trigger
	for _, t := range m.triggers {
		if t.FiresAt.After(now) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FiresAt.Before(out[j].FiresAt) })
	return out, nil
}

func TestScheduler_Rerun(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	records := week(now)
	store := newMemStore()
	s := NewScheduler(store)

	n1, err := s.ScheduleAll(context.Background(), records, DefaultPrefs(), now)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	n2, err := s.ScheduleAll(context.Background(), records, DefaultPrefs(), now)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if n1 != n2 {
		t.Errorf("submitted counts differ: %d vs %d", n1, n2)
	}
	// Upsert semantics: the store holds one entry per identifier, not
	// a doubled count.
	if len(store.triggers) != n1 {
		t.Errorf("store holds %d entries after rerun, want %d", len(store.triggers), n1)
	}
}

func TestScheduler_Pending(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
	store := newMemStore()
	s := NewScheduler(store)

	if _, err := s.ScheduleAll(context.Background(), week(now), DefaultPrefs(), now); err != nil {
		t.Fatalf("ScheduleAll: %v", err)
	}

	pending, err := s.Pending(context.Background(), now)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	for i := 1; i < len(pending); i++ {
		if pending[i].FiresAt.Before(pending[i-1].FiresAt) {
			t.Fatal("pending triggers not sorted by fire time")
		}
	}

	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	pending, _ = s.Pending(context.Background(), now)
	if len(pending) != 0 {
		t.Errorf("after clear, %d pending, want 0", len(pending))
	}
}
