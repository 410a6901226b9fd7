package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS notifications (
			identifier TEXT PRIMARY KEY,
			fires_at   DATETIME NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			screen     TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_notifications_fires_at ON notifications(fires_at);

		CREATE TABLE IF NOT EXISTS fasting_days (
			hijri_year INTEGER NOT NULL,
			day        INTEGER NOT NULL CHECK(day BETWEEN 1 AND 30),
			logged_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (hijri_year, day)
		);

		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
