package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaktiramazan/vakti/internal/dateutil"
	"github.com/vaktiramazan/vakti/internal/prayer"
	"github.com/vaktiramazan/vakti/internal/ramadan"
)

func (a *App) calendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar",
		Short: "Show the Ramadan fasting calendar",
		Long: `Show the Ramadan calendar as a week grid.

Fasted days are marked, special days (Kadir Gecesi, Arife) are
highlighted, and the three Bayram days follow the final fast.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			now := time.Now()

			records, err := a.ramadanRecords(ctx, now)
			if err != nil {
				return err
			}

			inRamadan := ramadan.Filter(records)
			if len(inRamadan) == 0 {
				fmt.Println("Ramazan ayı için veri bulunamadı.")
				return nil
			}

			completed, err := a.store.Completed(ctx, inRamadan[0].Hijri.Year)
			if err != nil {
				return fmt.Errorf("loading fasting log: %w", err)
			}

			grid := ramadan.BuildGrid(records, completed)
			printGrid(grid, dateutil.DateString(now))

			fmt.Println()
			fmt.Printf("  Tutulan oruç: %s\n",
				formatDone(fmt.Sprintf("%d/%d", grid.CompletedCount(), grid.RamadanDays)))
			printSpecialDays(grid)

			return nil
		},
	}
}

// ramadanRecords loads records spanning the months around now, wide enough
// to contain a full Ramadan plus Bayram.
func (a *App) ramadanRecords(ctx context.Context, now time.Time) ([]prayer.Record, error) {
	records, err := a.source.Range(ctx, now.AddDate(0, -1, 0), now.AddDate(0, 2, 0))
	if err != nil {
		return nil, fmt.Errorf("loading calendar: %w", err)
	}
	return records, nil
}

var weekdayHeaders = []string{"Pzt", "Sal", "Çar", "Per", "Cum", "Cmt", "Paz"}

// printGrid renders the calendar as a Monday-first 7-column grid.
func printGrid(g ramadan.Grid, today string) {
	fmt.Print("  ")
	for _, h := range weekdayHeaders {
		fmt.Printf("%4s", h)
	}
	fmt.Println()

	col := 0
	fmt.Print("  ")
	for ; col < g.StartColumn; col++ {
		fmt.Print("    ")
	}

	for _, s := range g.Slots {
		fmt.Print(cellLabel(s, today))
		col++
		if col == 7 {
			fmt.Println()
			fmt.Print("  ")
			col = 0
		}
	}
	fmt.Println()
}

// cellLabel renders one grid cell, padded to 4 columns before coloring so
// the escape codes do not skew the alignment.
func cellLabel(s ramadan.Slot, today string) string {
	var text string
	colorize := func(v string) string { return v }

	switch {
	case s.IsBayram():
		text = fmt.Sprintf("B%d", s.BayramDay)
		colorize = formatBayram
	case s.Completed:
		text = fmt.Sprintf("%d✓", s.Index)
		colorize = formatDone
	case s.Tag != ramadan.TagNone:
		text = fmt.Sprintf("%d", s.Index)
		colorize = formatSpecial
	default:
		text = fmt.Sprintf("%d", s.Index)
	}

	if s.Date != "" && s.Date == today {
		text = "[" + text + "]"
		colorize = formatActive
	}

	// Right-align by rune count; ✓ is one column wide but multiple bytes.
	pad := 4 - len([]rune(text))
	if pad < 0 {
		pad = 0
	}
	return fmt.Sprintf("%*s", pad, "") + colorize(text)
}

func printSpecialDays(g ramadan.Grid) {
	for _, s := range g.Slots {
		var name string
		switch {
		case s.Tag == ramadan.TagKadir:
			name = "Kadir Gecesi"
		case s.Tag == ramadan.TagArife:
			name = "Arife"
		case s.BayramDay == 1:
			name = "Ramazan Bayramı"
		default:
			continue
		}

		date := s.Date
		if date == "" {
			date = "—"
		}
		fmt.Printf("  %s %s\n", formatSpecial(name+":"), date)
	}
}
