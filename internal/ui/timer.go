package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaktiramazan/vakti/internal/fasting"
	"github.com/vaktiramazan/vakti/internal/prayer"
)

func (a *App) timerCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Show the fasting countdown",
		Long: `Show the countdown to the next fasting boundary.

During the fast the timer counts down to iftar; outside it, to the next
imsak. With --watch the display refreshes every second until interrupted.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			now := time.Now()

			records, err := a.source.Window(context.Background(), now, 1)
			if err != nil {
				return fmt.Errorf("loading prayer times: %w", err)
			}
			daily := prayer.DailyRecords(records, now)

			if !watch {
				printTimer(fasting.Evaluate(now, daily.Today, daily.Tomorrow))
				return nil
			}

			for {
				st := fasting.Evaluate(time.Now(), daily.Today, daily.Tomorrow)
				// \r redraw keeps the single-line display in place.
				fmt.Printf("\r\033[K  %s  %s", formatActive(st.Clock()), progressBar(st.Progress, 28))
				if st.Degraded {
					fmt.Println()
					return nil
				}
				time.Sleep(time.Second)
			}
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Refresh every second")

	return cmd
}

func printTimer(st fasting.Status) {
	var label string
	switch st.Phase {
	case fasting.PhaseBeforeDawn:
		label = "Sahura kalan"
	case fasting.PhaseFasting:
		label = "İftara kalan"
	case fasting.PhaseAfterIftar:
		label = "Yarınki sahura kalan"
	}

	fmt.Printf("  %s\n", formatHeader(label))
	fmt.Printf("  %s\n", formatActive(st.Clock()))
	if st.Degraded {
		fmt.Printf("  %s\n", formatMuted("Veri eksik; geri sayım duraklatıldı."))
		return
	}
	fmt.Printf("  %s\n", progressBar(st.Progress, 28))
}
