package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaktiramazan/vakti/internal/prayer"
)

func (a *App) nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer time",
		RunE: func(_ *cobra.Command, _ []string) error {
			now := time.Now()

			records, err := a.source.Window(context.Background(), now, 1)
			if err != nil {
				return fmt.Errorf("loading prayer times: %w", err)
			}

			daily := prayer.DailyRecords(records, now)
			if daily.Today == nil {
				return fmt.Errorf("no prayer times available for %s", now.Format("2006-01-02"))
			}

			key, at, ok := prayer.Next(daily.Today, now)
			if !ok {
				// Past yatsi: the next prayer is tomorrow's imsak.
				if daily.Tomorrow == nil {
					return fmt.Errorf("no prayer times available for tomorrow")
				}
				key = prayer.KeyImsak
				at = daily.Tomorrow.At(prayer.KeyImsak, now)
			}

			fmt.Printf("%s  %s  %s\n",
				formatActive(prayer.Names[key]),
				at.Format("15:04"),
				formatMuted(fmt.Sprintf("(%s)", formatRemaining(at.Sub(now)))))
			return nil
		},
	}
}
