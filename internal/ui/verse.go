package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaktiramazan/vakti/internal/dateutil"
)

func (a *App) verseCmd() *cobra.Command {
	var (
		date string
		seed string
	)

	cmd := &cobra.Command{
		Use:   "verse",
		Short: "Show the verse of the day",
		Long: `Show the verse of the day.

The verse is selected deterministically from the date, so everyone sees
the same verse on the same day. A seed selects an alternate stream, e.g.
a different verse for the iftar notification.`,
		Example: `  vakti verse
  vakti verse --date=2026-03-17
  vakti verse --seed=iftar`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if date == "" {
				date = dateutil.DateString(time.Now())
			} else if _, err := dateutil.ParseDate(date); err != nil {
				return err
			}

			v := a.pool.ForDate(date, seed)

			width := termWidth() - 4
			if width > 72 {
				width = 72
			}

			fmt.Println(formatHeader(v.Reference()))
			if v.ArabicText != "" {
				fmt.Println()
				fmt.Printf("  %s\n", v.ArabicText)
			}
			fmt.Println()
			for _, line := range wrap(v.Text, width) {
				fmt.Printf("  %s\n", line)
			}
			if v.JuzNumber > 0 {
				fmt.Println()
				fmt.Println(formatMuted(fmt.Sprintf("Cüz %d, sayfa %d", v.JuzNumber, v.PageNumber)))
			}

			// Remember the selection so the verse screen can reopen on it.
			if err := a.store.Set("last_verse_id", strconv.Itoa(v.ID)); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to select for (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&seed, "seed", "", "Alternate selection stream")

	cmd.AddCommand(a.verseSurahsCmd())

	return cmd
}

func (a *App) verseSurahsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "surahs",
		Short: "List the surahs in the verse dataset",
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, s := range a.pool.Surahs() {
				fmt.Printf("  %3d  %-14s %s\n", s.Number, s.NameTR,
					formatMuted(fmt.Sprintf("%d ayet", s.VerseCount)))
			}
			return nil
		},
	}
}
