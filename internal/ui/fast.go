package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaktiramazan/vakti/internal/dateutil"
	"github.com/vaktiramazan/vakti/internal/prayer"
	"github.com/vaktiramazan/vakti/internal/ramadan"
)

func (a *App) fastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fast",
		Short: "Track fasted Ramadan days",
	}

	cmd.AddCommand(a.fastLogCmd())
	cmd.AddCommand(a.fastUnlogCmd())
	cmd.AddCommand(a.fastStatusCmd())

	return cmd
}

func (a *App) fastLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log [day]",
		Short: "Mark a Ramadan day as fasted",
		Long: `Mark a Ramadan day (1-30) as fasted.

Without an argument, logs today's Ramadan day.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			year, days, day, err := a.resolveFastDay(ctx, args)
			if err != nil {
				return err
			}
			if day < 1 || day > days {
				return fmt.Errorf("day must be 1-%d, got %d", days, day)
			}

			if err := a.store.Complete(ctx, year, day); err != nil {
				return err
			}
			fmt.Printf("%s. gün oruç olarak kaydedildi.\n", formatDone(strconv.Itoa(day)))
			return nil
		},
	}
}

func (a *App) fastUnlogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlog [day]",
		Short: "Remove a logged fasting day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			year, days, day, err := a.resolveFastDay(ctx, args)
			if err != nil {
				return err
			}
			if day < 1 || day > days {
				return fmt.Errorf("day must be 1-%d, got %d", days, day)
			}

			if err := a.store.Uncomplete(ctx, year, day); err != nil {
				return err
			}
			fmt.Printf("%d. günün kaydı silindi.\n", day)
			return nil
		},
	}
}

func (a *App) fastStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show fasting progress",
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

			days := ramadan.DayCount(records)
			fmt.Printf("Tutulan oruç: %s\n", formatDone(fmt.Sprintf("%d/%d", len(completed), days)))
			fmt.Printf("%s\n", progressBar(float64(len(completed))/float64(days), 28))

			if r := prayer.FindForDate(inRamadan, dateutil.DateString(now)); r != nil {
				if day, ok := ramadan.DayOf(r); ok {
					state := "tutulmadı"
					if completed[day] {
						state = "tutuldu"
					}
					fmt.Printf("Bugün Ramazan'ın %d. günü (%s).\n", day, state)
				}
			}
			return nil
		},
	}
}

// resolveFastDay determines the Hijri year, Ramadan length, and target day
// for a fast log command. Without an explicit argument it uses today's
// Ramadan day.
func (a *App) resolveFastDay(ctx context.Context, args []string) (year, days, day int, err error) {
	now := time.Now()

	records, err := a.ramadanRecords(ctx, now)
	if err != nil {
		return 0, 0, 0, err
	}
	inRamadan := ramadan.Filter(records)
	if len(inRamadan) == 0 {
		return 0, 0, 0, fmt.Errorf("no Ramadan data available")
	}

	year = inRamadan[0].Hijri.Year
	days = ramadan.DayCount(records)

	if len(args) == 1 {
		day, err = strconv.Atoi(args[0])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid day %q", args[0])
		}
		return year, days, day, nil
	}

	r := prayer.FindForDate(inRamadan, dateutil.DateString(now))
	if r == nil {
		return 0, 0, 0, fmt.Errorf("today is not in Ramadan; pass a day number")
	}
	day, ok := ramadan.DayOf(r)
	if !ok {
		return 0, 0, 0, fmt.Errorf("today is not in Ramadan; pass a day number")
	}
	return year, days, day, nil
}
