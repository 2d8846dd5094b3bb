// Package sqlite provides SQLite-based persistent storage for the progress
// engine. Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/progress.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "progress.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// User profiles plus the two streak counters. The counters are
		// single-writer state: only RecordWorkout and SetStreak touch them.
		`CREATE TABLE IF NOT EXISTS users (
			id                    TEXT PRIMARY KEY,
			full_name             TEXT NOT NULL DEFAULT '',
			email                 TEXT NOT NULL,
			push_token            TEXT,
			is_subscribed         BOOLEAN NOT NULL DEFAULT 1,
			trusted_contact_email TEXT,
			current_streak        INTEGER NOT NULL DEFAULT 0,
			longest_streak        INTEGER NOT NULL DEFAULT 0,
			streak_last_date      TEXT NOT NULL DEFAULT ''
		)`,

		// Workout catalog (titles shown in journal excerpts and digests)
		`CREATE TABLE IF NOT EXISTS workouts (
			id               TEXT PRIMARY KEY,
			title            TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL DEFAULT 0
		)`,

		// Append-only workout log. Dates are ISO day strings so range
		// scans and day-equality both work with plain string comparison.
		`CREATE TABLE IF NOT EXISTS workout_logs (
			id               TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL,
			workout_id       TEXT NOT NULL,
			date             TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL DEFAULT 0,
			journal_text     TEXT,
			sentiment_tag    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_logs_user_date ON workout_logs(user_id, date)`,

		// Denormalized earned-badge cache for display. Never authoritative:
		// the badge rules over current stats always win, and the cache is
		// fully replaced on every refresh.
		`CREATE TABLE IF NOT EXISTS badge_cache (
			user_id   TEXT NOT NULL,
			badge_id  TEXT NOT NULL,
			earned_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, badge_id)
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
