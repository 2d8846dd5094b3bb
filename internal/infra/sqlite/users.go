package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/phildaponte/senior-strength/internal/domain"
)

// ─── Users ──────────────────────────────────────────────────────────────────

// UpsertUser inserts or updates a user profile. Streak counters are left
// untouched on update — they belong to the streak tracker.
func (d *DB) UpsertUser(u domain.User) error {
	_, err := d.db.Exec(
		`INSERT INTO users (id, full_name, email, push_token, is_subscribed, trusted_contact_email)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			full_name=excluded.full_name,
			email=excluded.email,
			push_token=excluded.push_token,
			is_subscribed=excluded.is_subscribed,
			trusted_contact_email=excluded.trusted_contact_email`,
		u.ID, u.FullName, u.Email, nullable(u.PushToken), u.Subscribed,
		nullable(u.TrustedContactEmail),
	)
	return err
}

// GetUser retrieves a user by ID.
func (d *DB) GetUser(id string) (*domain.User, error) {
	row := d.db.QueryRow(
		`SELECT id, full_name, email, push_token, is_subscribed, trusted_contact_email,
		        current_streak, longest_streak
		 FROM users WHERE id = ?`, id,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// ListPushEligible returns subscribed users that have a push token —
// the inactivity scan's candidate universe.
func (d *DB) ListPushEligible() ([]domain.User, error) {
	return d.listUsers(
		`SELECT id, full_name, email, push_token, is_subscribed, trusted_contact_email,
		        current_streak, longest_streak
		 FROM users
		 WHERE push_token IS NOT NULL AND push_token != '' AND is_subscribed = 1
		 ORDER BY id`,
	)
}

// ListWithTrustedContact returns users with a configured trusted-contact
// address — the weekly digest's candidate universe.
func (d *DB) ListWithTrustedContact() ([]domain.User, error) {
	return d.listUsers(
		`SELECT id, full_name, email, push_token, is_subscribed, trusted_contact_email,
		        current_streak, longest_streak
		 FROM users
		 WHERE trusted_contact_email IS NOT NULL AND trusted_contact_email != ''
		 ORDER BY id`,
	)
}

func (d *DB) listUsers(query string) ([]domain.User, error) {
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// ─── Streak State ───────────────────────────────────────────────────────────

// GetStreak loads the persisted streak counters for a user.
func (d *DB) GetStreak(userID string) (domain.StreakState, error) {
	return getStreak(d.db, userID)
}

// SetStreak overwrites the persisted streak counters. Used by the
// reconciliation path; the normal write path is RecordWorkout.
func (d *DB) SetStreak(userID string, s domain.StreakState) error {
	return setStreak(d.db, userID, s)
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

func getStreak(q execer, userID string) (domain.StreakState, error) {
	var s domain.StreakState
	var lastDate string
	err := q.QueryRow(
		`SELECT current_streak, longest_streak, streak_last_date FROM users WHERE id = ?`,
		userID,
	).Scan(&s.Current, &s.Longest, &lastDate)
	if err == sql.ErrNoRows {
		return s, domain.ErrUserNotFound
	}
	if err != nil {
		return s, err
	}
	if lastDate != "" {
		s.LastDate, err = domain.ParseDate(lastDate)
		if err != nil {
			return s, fmt.Errorf("stored streak date: %w", err)
		}
	}
	return s, nil
}

func setStreak(q execer, userID string, s domain.StreakState) error {
	lastDate := ""
	if !s.LastDate.IsZero() {
		lastDate = s.LastDate.String()
	}
	result, err := q.Exec(
		`UPDATE users SET current_streak = ?, longest_streak = ?, streak_last_date = ? WHERE id = ?`,
		s.Current, s.Longest, lastDate, userID,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	var pushToken, trusted sql.NullString

	err := s.Scan(&u.ID, &u.FullName, &u.Email, &pushToken, &u.Subscribed,
		&trusted, &u.CurrentStreak, &u.LongestStreak)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	u.PushToken = pushToken.String
	u.TrustedContactEmail = trusted.String
	return &u, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
