package ramadan

import (
	"testing"

	"github.com/vaktiramazan/vakti/internal/prayer"
)

func hijriRecord(date string, month, day int) prayer.Record {
	return prayer.Record{
		Date:  date,
		Hijri: prayer.HijriDate{Day: day, Month: month, Year: 1447},
		Times: prayer.Times{
			Imsak: "05:30", Sunrise: "06:55", Noon: "13:10",
			Afternoon: "16:20", Sunset: "18:40", Night: "20:05",
		},
	}
}

// ramadan1447 builds a 30-day Ramadan starting Wednesday 2026-02-18 plus
// three Bayram days, matching the 1447 AH calendar.
func ramadan1447() []prayer.Record {
	var records []prayer.Record
	dates := []string{
		"2026-02-18", "2026-02-19", "2026-02-20", "2026-02-21", "2026-02-22",
		"2026-02-23", "2026-02-24", "2026-02-25", "2026-02-26", "2026-02-27",
		"2026-02-28", "2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04",
		"2026-03-05", "2026-03-06", "2026-03-07", "2026-03-08", "2026-03-09",
		"2026-03-10", "2026-03-11", "2026-03-12", "2026-03-13", "2026-03-14",
		"2026-03-15", "2026-03-16", "2026-03-17", "2026-03-18", "2026-03-19",
	}
	for i, d := range dates {
		records = append(records, hijriRecord(d, prayer.MonthRamadan, i+1))
	}
	records = append(records,
		hijriRecord("2026-03-20", prayer.MonthShawwal, 1),
		hijriRecord("2026-03-21", prayer.MonthShawwal, 2),
		hijriRecord("2026-03-22", prayer.MonthShawwal, 3),
	)
	return records
}

func TestDayOf(t *testing.T) {
	tests := []struct {
		name    string
		month   int
		day     int
		want    int
		wantOK  bool
	}{
		{name: "mid ramadan", month: 9, day: 15, want: 15, wantOK: true},
		{name: "first day", month: 9, day: 1, want: 1, wantOK: true},
		{name: "shawwal", month: 10, day: 1, wantOK: false},
		{name: "shaban", month: 8, day: 29, wantOK: false},
		{name: "spillover clamped", month: 9, day: 31, want: 30, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := hijriRecord("2026-03-02", tt.month, tt.day)
			got, ok := DayOf(&r)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("DayOf = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}

	t.Run("nil record", func(t *testing.T) {
		if _, ok := DayOf(nil); ok {
			t.Error("DayOf(nil) ok = true, want false")
		}
	})
}

func TestDayCount(t *testing.T) {
	if got := DayCount(ramadan1447()); got != 30 {
		t.Errorf("DayCount = %d, want 30", got)
	}
	if got := DayCount(nil); got != DefaultDayCount {
		t.Errorf("DayCount(nil) = %d, want %d", got, DefaultDayCount)
	}
}

func TestBayramDate(t *testing.T) {
	records := ramadan1447()

	for day, want := range map[int]string{1: "2026-03-20", 2: "2026-03-21", 3: "2026-03-22"} {
		got, ok := BayramDate(records, day)
		if !ok || got != want {
			t.Errorf("BayramDate(%d) = (%q, %v), want (%q, true)", day, got, ok, want)
		}
	}

	if _, ok := BayramDate(records, 4); ok {
		t.Error("BayramDate(4) ok = true, want false")
	}
	if _, ok := BayramDate(nil, 1); ok {
		t.Error("BayramDate on empty records ok = true, want false")
	}
}

func TestStartColumn(t *testing.T) {
	// 2026-02-18 is a Wednesday: Monday=0 convention gives column 2.
	if got := StartColumn(ramadan1447()); got != 2 {
		t.Errorf("StartColumn = %d, want 2", got)
	}
	if got := StartColumn(nil); got != 0 {
		t.Errorf("StartColumn(nil) = %d, want 0", got)
	}
}

func TestSpecialDay(t *testing.T) {
	if got := SpecialDay(27, 30); got != TagKadir {
		t.Errorf("day 27 = %q, want kadir", got)
	}
	if got := SpecialDay(30, 30); got != TagArife {
		t.Errorf("final day = %q, want arife", got)
	}
	if got := SpecialDay(29, 30); got != TagNone {
		t.Errorf("day 29 = %q, want none", got)
	}
	// A 29-day Ramadan moves Arife to day 29.
	if got := SpecialDay(29, 29); got != TagArife {
		t.Errorf("final day of short ramadan = %q, want arife", got)
	}
}

func TestBuildGrid(t *testing.T) {
	records := ramadan1447()
	completed := map[int]bool{1: true, 2: true, 13: true}

	g := BuildGrid(records, completed)

	if g.RamadanDays != 30 {
		t.Fatalf("RamadanDays = %d, want 30", g.RamadanDays)
	}
	if len(g.Slots) != 33 {
		t.Fatalf("len(Slots) = %d, want 33", len(g.Slots))
	}
	if g.StartColumn != 2 {
		t.Errorf("StartColumn = %d, want 2", g.StartColumn)
	}
	if g.CompletedCount() != 3 {
		t.Errorf("CompletedCount = %d, want 3", g.CompletedCount())
	}

	first := g.Slots[0]
	if first.Index != 1 || first.Date != "2026-02-18" || !first.Completed {
		t.Errorf("slot 1 = %+v", first)
	}

	kadir := g.Slots[26]
	if kadir.Tag != TagKadir {
		t.Errorf("slot 27 tag = %q, want kadir", kadir.Tag)
	}

	arife := g.Slots[29]
	if arife.Tag != TagArife {
		t.Errorf("slot 30 tag = %q, want arife", arife.Tag)
	}

	bayram1 := g.Slots[30]
	if !bayram1.IsBayram() || bayram1.BayramDay != 1 || bayram1.Date != "2026-03-20" {
		t.Errorf("slot 31 = %+v, want bayram day 1 on 2026-03-20", bayram1)
	}
}

func TestBuildGrid_EmptyDataset(t *testing.T) {
	g := BuildGrid(nil, nil)
	if g.RamadanDays != DefaultDayCount {
		t.Errorf("RamadanDays = %d, want %d", g.RamadanDays, DefaultDayCount)
	}
	if len(g.Slots) != DefaultDayCount+BayramDays {
		t.Errorf("len(Slots) = %d, want %d", len(g.Slots), DefaultDayCount+BayramDays)
	}
}
