package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/phildaponte/senior-strength/internal/domain"
)

// ─── Workout Catalog ────────────────────────────────────────────────────────

// UpsertWorkout inserts or updates a workout catalog entry.
func (d *DB) UpsertWorkout(w domain.Workout) error {
	_, err := d.db.Exec(
		`INSERT INTO workouts (id, title, duration_minutes) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			duration_minutes=excluded.duration_minutes`,
		w.ID, w.Title, w.DurationMinutes,
	)
	return err
}

// GetWorkout retrieves a workout catalog entry by ID.
func (d *DB) GetWorkout(id string) (*domain.Workout, error) {
	var w domain.Workout
	err := d.db.QueryRow(
		`SELECT id, title, duration_minutes FROM workouts WHERE id = ?`, id,
	).Scan(&w.ID, &w.Title, &w.DurationMinutes)
	if err == sql.ErrNoRows {
		return nil, domain.ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// ─── Workout Log ────────────────────────────────────────────────────────────

// RecordWorkout appends a log entry and applies the streak transition in a
// single transaction, so a crash can never leave the counters reflecting a
// log that was not durably recorded (or vice versa).
//
// Re-entrancy guard: the transition only runs for the first log of the
// entry's day — duplicate delivery of the same completed-workout event
// cannot double-count.
func (d *DB) RecordWorkout(entry domain.WorkoutLog) (domain.StreakState, error) {
	var state domain.StreakState

	tx, err := d.db.Begin()
	if err != nil {
		return state, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	day := entry.Date.String()

	var dayCount int
	if err := tx.QueryRow(
		`SELECT COUNT(*) FROM workout_logs WHERE user_id = ? AND date = ?`,
		entry.UserID, day,
	).Scan(&dayCount); err != nil {
		return state, fmt.Errorf("count day logs: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO workout_logs (id, user_id, workout_id, date, duration_seconds, journal_text, sentiment_tag)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.WorkoutID, day,
		entry.DurationSeconds, nullable(entry.JournalText), nullable(string(entry.Sentiment)),
	); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return state, domain.ErrLogExists
		}
		return state, fmt.Errorf("insert log: %w", err)
	}

	state, err = getStreak(tx, entry.UserID)
	if err != nil {
		return state, fmt.Errorf("load streak: %w", err)
	}

	if dayCount == 0 {
		var yesterday int
		if err := tx.QueryRow(
			`SELECT COUNT(*) FROM workout_logs WHERE user_id = ? AND date = ?`,
			entry.UserID, entry.Date.AddDays(-1).String(),
		).Scan(&yesterday); err != nil {
			return state, fmt.Errorf("check yesterday: %w", err)
		}

		state = state.Advance(entry.Date, yesterday > 0)
		if err := setStreak(tx, entry.UserID, state); err != nil {
			return state, fmt.Errorf("save streak: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return state, fmt.Errorf("commit: %w", err)
	}
	return state, nil
}

// LogsByUser returns a user's logs, oldest first. from/to bound the date
// range inclusively when non-zero.
func (d *DB) LogsByUser(userID string, from, to domain.Date) ([]domain.WorkoutLog, error) {
	query := `SELECT id, user_id, workout_id, date, duration_seconds, journal_text, sentiment_tag
	          FROM workout_logs WHERE user_id = ?`
	args := []any{userID}
	if !from.IsZero() {
		query += ` AND date >= ?`
		args = append(args, from.String())
	}
	if !to.IsZero() {
		query += ` AND date <= ?`
		args = append(args, to.String())
	}
	query += ` ORDER BY date ASC`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.WorkoutLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// HasLogOnDate reports whether the user logged any workout on the given day.
func (d *DB) HasLogOnDate(userID string, day domain.Date) (bool, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM workout_logs WHERE user_id = ? AND date = ?`,
		userID, day.String(),
	).Scan(&count)
	return count > 0, err
}

// LastLogDate returns the most recent log date for a user, or a zero Date
// if the user has never logged a workout.
func (d *DB) LastLogDate(userID string) (domain.Date, error) {
	var last sql.NullString
	err := d.db.QueryRow(
		`SELECT MAX(date) FROM workout_logs WHERE user_id = ?`, userID,
	).Scan(&last)
	if err != nil {
		return domain.Date{}, err
	}
	if !last.Valid || last.String == "" {
		return domain.Date{}, nil
	}
	return domain.ParseDate(last.String)
}

// JournalEntries returns the user's journal-bearing logs joined with workout
// titles, most recent first, capped at limit.
func (d *DB) JournalEntries(userID string, from, to domain.Date, limit int) ([]domain.JournalExcerpt, error) {
	query := `SELECT l.date, l.journal_text, COALESCE(l.sentiment_tag, ''), COALESCE(w.title, 'Unknown Workout')
	          FROM workout_logs l LEFT JOIN workouts w ON w.id = l.workout_id
	          WHERE l.user_id = ? AND l.journal_text IS NOT NULL AND l.journal_text != ''`
	args := []any{userID}
	if !from.IsZero() {
		query += ` AND l.date >= ?`
		args = append(args, from.String())
	}
	if !to.IsZero() {
		query += ` AND l.date <= ?`
		args = append(args, to.String())
	}
	query += ` ORDER BY l.date DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var excerpts []domain.JournalExcerpt
	for rows.Next() {
		var e domain.JournalExcerpt
		var date, tag string
		if err := rows.Scan(&date, &e.Text, &tag, &e.WorkoutTitle); err != nil {
			return nil, err
		}
		if e.Date, err = domain.ParseDate(date); err != nil {
			return nil, err
		}
		e.Sentiment = domain.Sentiment(tag)
		excerpts = append(excerpts, e)
	}
	return excerpts, rows.Err()
}

// ─── Badge Cache ────────────────────────────────────────────────────────────

// ReplaceBadgeCache overwrites the denormalized earned-badge list for a
// user. The cache exists only for display; the badge rules over current
// stats remain authoritative.
func (d *DB) ReplaceBadgeCache(userID string, badgeIDs []string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM badge_cache WHERE user_id = ?`, userID); err != nil {
		return err
	}
	now := time.Now().Unix()
	for _, id := range badgeIDs {
		if _, err := tx.Exec(
			`INSERT INTO badge_cache (user_id, badge_id, earned_at) VALUES (?, ?, ?)`,
			userID, id, now,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CachedBadges returns the denormalized earned-badge IDs for a user.
func (d *DB) CachedBadges(userID string) ([]string, error) {
	rows, err := d.db.Query(
		`SELECT badge_id FROM badge_cache WHERE user_id = ? ORDER BY badge_id`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ─── Scanners ───────────────────────────────────────────────────────────────

// scanLog maps a raw row to the typed entry exactly once at the store
// boundary; missing duration defaults to 0 and missing sentiment stays
// empty (aggregations treat it as neutral).
func scanLog(s scanner) (*domain.WorkoutLog, error) {
	var l domain.WorkoutLog
	var date string
	var duration sql.NullInt64
	var journal, tag sql.NullString

	err := s.Scan(&l.ID, &l.UserID, &l.WorkoutID, &date, &duration, &journal, &tag)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if l.Date, err = domain.ParseDate(date); err != nil {
		return nil, err
	}
	l.DurationSeconds = int(duration.Int64)
	l.JournalText = journal.String
	l.Sentiment = domain.Sentiment(tag.String)
	return &l, nil
}
