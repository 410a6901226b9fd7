// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/vaktiramazan/vakti/internal/notify"
)

// SQLite backs the notification store, the fasting log, and the reminder
// flag store with a single database file.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite store and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Schedule stores a trigger, replacing any existing row with the same
// identifier. Rescheduling the rolling window is therefore idempotent.
func (s *SQLite) Schedule(ctx context.Context, t notify.Trigger) error {
	query := `
		INSERT INTO notifications (identifier, fires_at, title, body, screen)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(identifier) DO UPDATE SET
			fires_at = excluded.fires_at,
			title    = excluded.title,
			body     = excluded.body,
			screen   = excluded.screen
	`

	_, err := s.db.ExecContext(ctx, query,
		t.Identifier,
		t.FiresAt.Format(time.RFC3339),
		t.Title,
		t.Body,
		t.Screen,
	)
	if err != nil {
		return fmt.Errorf("scheduling notification %q: %w", t.Identifier, err)
	}

	return nil
}

// Cancel removes a scheduled trigger. Cancelling an unknown identifier is
// not an error.
func (s *SQLite) Cancel(ctx context.Context, identifier string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE identifier = ?`, identifier)
	if err != nil {
		return fmt.Errorf("cancelling notification %q: %w", identifier, err)
	}
	return nil
}

// CancelAll removes every scheduled trigger.
func (s *SQLite) CancelAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notifications`); err != nil {
		return fmt.Errorf("cancelling notifications: %w", err)
	}
	return nil
}

// Pending returns stored triggers firing after now, soonest first.
func (s *SQLite) Pending(ctx context.Context, now time.Time) ([]notify.Trigger, error) {
	query := `
		SELECT identifier, fires_at, title, body, screen
		FROM notifications
		WHERE fires_at > ?
		ORDER BY fires_at, identifier
	`

	rows, err := s.db.QueryContext(ctx, query, now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var triggers []notify.Trigger
	for rows.Next() {
		var (
			t       notify.Trigger
			firesAt string
		)
		if err := rows.Scan(&t.Identifier, &firesAt, &t.Title, &t.Body, &t.Screen); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}

		t.FiresAt, err = time.Parse(time.RFC3339, firesAt)
		if err != nil {
			return nil, fmt.Errorf("parsing fires_at: %w", err)
		}

		triggers = append(triggers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notifications: %w", err)
	}

	return triggers, nil
}

// Complete marks a Ramadan day (1..30) as fasted. Logging the same day
// twice leaves a single row.
func (s *SQLite) Complete(ctx context.Context, hijriYear, day int) error {
	query := `
		INSERT INTO fasting_days (hijri_year, day)
		VALUES (?, ?)
		ON CONFLICT(hijri_year, day) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, hijriYear, day); err != nil {
		return fmt.Errorf("logging fasting day %d/%d: %w", hijriYear, day, err)
	}
	return nil
}

// Uncomplete removes a logged day.
func (s *SQLite) Uncomplete(ctx context.Context, hijriYear, day int) error {
	query := `DELETE FROM fasting_days WHERE hijri_year = ? AND day = ?`
	if _, err := s.db.ExecContext(ctx, query, hijriYear, day); err != nil {
		return fmt.Errorf("removing fasting day %d/%d: %w", hijriYear, day, err)
	}
	return nil
}

// Completed returns the logged day set for a Hijri year.
func (s *SQLite) Completed(ctx context.Context, hijriYear int) (map[int]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT day FROM fasting_days WHERE hijri_year = ?`, hijriYear)
	if err != nil {
		return nil, fmt.Errorf("querying fasting days: %w", err)
	}
	defer func() { _ = rows.Close() }()

	days := make(map[int]bool)
	for rows.Next() {
		var day int
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scanning fasting day: %w", err)
		}
		days[day] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fasting days: %w", err)
	}

	return days, nil
}

// WasShown reports whether an in-app reminder was already claimed for a
// date.
func (s *SQLite) WasShown(kind, date string) (bool, error) {
	v, err := s.Get(fmt.Sprintf("%s_shown_%s", kind, date))
	if err != nil {
		return false, err
	}
	return v == "1", nil
}

// MarkShown claims an in-app reminder for a date.
func (s *SQLite) MarkShown(kind, date string) error {
	return s.Set(fmt.Sprintf("%s_shown_%s", kind, date), "1")
}

// Get returns the value stored under key, or "" when the key is absent.
func (s *SQLite) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, nil
}

// Set stores a value under key, replacing any previous value.
func (s *SQLite) Set(key, value string) error {
	query := `
		INSERT INTO kv (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}
