package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/vaktiramazan/vakti/internal/aladhan"
	"github.com/vaktiramazan/vakti/internal/config"
	"github.com/vaktiramazan/vakti/internal/db"
	"github.com/vaktiramazan/vakti/internal/ui"
	"github.com/vaktiramazan/vakti/internal/verse"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	store, err := db.New(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	cache, err := aladhan.NewCache(cfg.Storage.CacheDir)
	if err != nil {
		return fmt.Errorf("opening calendar cache: %w", err)
	}
	client := aladhan.NewClient(cfg.Aladhan.BaseURL, cfg.Aladhan.Method, cfg.Aladhan.CalendarMethod)
	source := aladhan.NewSource(client, cache, cfg.Location.Latitude, cfg.Location.Longitude, log.Logger)

	pool := verse.DefaultPool()
	if cfg.Storage.VersesPath != "" {
		pool, err = verse.LoadPool(cfg.Storage.VersesPath)
		if err != nil {
			return fmt.Errorf("loading verse dataset: %w", err)
		}
	}

	app := ui.NewApp(cfg, store, source, pool)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
