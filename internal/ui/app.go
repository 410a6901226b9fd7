// Package ui implements the command line interface.
package ui

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vaktiramazan/vakti/internal/aladhan"
	"github.com/vaktiramazan/vakti/internal/config"
	"github.com/vaktiramazan/vakti/internal/db"
	"github.com/vaktiramazan/vakti/internal/verse"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	cfg    *config.Config
	store  *db.SQLite
	source *aladhan.Source
	pool   *verse.Pool
	root   *cobra.Command
	debug  bool
}

// NewApp creates a new CLI application.
func NewApp(cfg *config.Config, store *db.SQLite, source *aladhan.Source, pool *verse.Pool) *App {
	a := &App{cfg: cfg, store: store, source: source, pool: pool}

	a.root = &cobra.Command{
		Use:   "vakti",
		Short: "Prayer times and Ramadan companion",
		Long: `Vakti shows daily prayer times, the live fasting countdown, the Ramadan
calendar, and schedules prayer notifications for the configured location.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			if a.debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.WarnLevel)
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runToday()
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.todayCmd())
	a.root.AddCommand(a.nextCmd())
	a.root.AddCommand(a.timerCmd())
	a.root.AddCommand(a.calendarCmd())
	a.root.AddCommand(a.fastCmd())
	a.root.AddCommand(a.verseCmd())
	a.root.AddCommand(a.menuCmd())
	a.root.AddCommand(a.notifyCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("vakti %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases application resources.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
