package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaktiramazan/vakti/internal/notify"
)

func (a *App) notifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Manage scheduled notifications",
	}

	cmd.AddCommand(a.notifyScheduleCmd())
	cmd.AddCommand(a.notifyListCmd())
	cmd.AddCommand(a.notifyClearCmd())

	return cmd
}

func (a *App) notifyScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Schedule the next week of notifications",
		Long: `Compute and store the notification schedule for the coming week.

Identifiers are deterministic per event and date, so re-running after a
preference change replaces the previous schedule instead of stacking
duplicates.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			now := time.Now()

			records, err := a.source.Window(ctx, now, notify.WindowDays)
			if err != nil {
				return fmt.Errorf("loading prayer times: %w", err)
			}

			count, err := notify.NewScheduler(a.store).ScheduleAll(ctx, records, a.cfg.Prefs(), now)
			if err != nil {
				return err
			}

			fmt.Printf("%d bildirim planlandı.\n", count)
			return nil
		},
	}
}

func (a *App) notifyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending notifications",
		RunE: func(_ *cobra.Command, _ []string) error {
			pending, err := notify.NewScheduler(a.store).Pending(context.Background(), time.Now())
			if err != nil {
				return err
			}

			if len(pending) == 0 {
				fmt.Println("Planlanmış bildirim yok.")
				return nil
			}

			var currentDate string
			for _, t := range pending {
				date := t.FiresAt.Format("2006-01-02")
				if date != currentDate {
					if currentDate != "" {
						fmt.Println()
					}
					fmt.Println(formatHeader(fmt.Sprintf("=== %s ===", date)))
					currentDate = date
				}
				fmt.Printf("  %s  %-28s %s\n",
					t.FiresAt.Format("15:04"), t.Title, formatMuted(t.Identifier))
			}
			return nil
		},
	}
}

func (a *App) notifyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Cancel all scheduled notifications",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := notify.NewScheduler(a.store).Clear(context.Background()); err != nil {
				return err
			}
			fmt.Println("Tüm bildirimler iptal edildi.")
			return nil
		},
	}
}
