package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaktiramazan/vakti/internal/fasting"
	"github.com/vaktiramazan/vakti/internal/prayer"
)

func (a *App) todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's prayer times and the fasting countdown",
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runToday()
		},
	}
}

func (a *App) runToday() error {
	now := time.Now()

	records, err := a.source.Window(context.Background(), now, 1)
	if err != nil {
		return fmt.Errorf("loading prayer times: %w", err)
	}

	daily := prayer.DailyRecords(records, now)
	if daily.Today == nil {
		return fmt.Errorf("no prayer times available for %s", now.Format("2006-01-02"))
	}

	fmt.Println(formatHeader(fmt.Sprintf("%s — %s", a.cfg.Location.Name, now.Format("02.01.2006"))))
	if h := daily.Today.Hijri; h.Day > 0 {
		fmt.Println(formatMuted(fmt.Sprintf("%d %s %d", h.Day, h.MonthName, h.Year)))
	}
	if daily.Fallback {
		fmt.Println(formatMuted("Bugünün verisi bulunamadı, eldeki ilk gün gösteriliyor."))
	}
	fmt.Println()

	for _, e := range prayer.DisplayList(daily.Today.Times, now) {
		marker := "  "
		line := fmt.Sprintf("%-14s %s", e.Name, e.Time)
		if e.Active {
			marker = formatActive("▸ ")
			line = formatActive(line)
		}
		fmt.Printf("  %s%s\n", marker, line)
	}
	fmt.Println()

	printCountdown(fasting.Evaluate(now, daily.Today, daily.Tomorrow))

	reminders := fasting.DueReminders(now, daily.Today,
		a.cfg.Notifications.SahurMinutesBeforeImsak, a.cfg.Notifications.IftarEnabled, a.store)
	for _, r := range reminders {
		fmt.Printf("\n  %s %s\n", formatSpecial("●"), formatHeader(r.Title))
		fmt.Printf("    %s\n", r.Body)
	}

	return nil
}

// printCountdown renders the fasting countdown with a shrinking progress bar.
func printCountdown(st fasting.Status) {
	var label string
	switch st.Phase {
	case fasting.PhaseFasting:
		label = "İftara kalan"
	default:
		label = "Sahura kalan"
	}

	fmt.Printf("  %s: %s\n", label, formatActive(st.Clock()))
	if !st.Degraded {
		fmt.Printf("  %s\n", progressBar(st.Progress, 28))
	}
}
