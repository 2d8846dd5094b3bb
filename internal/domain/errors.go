package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Store errors
	ErrUserNotFound    = errors.New("user not found")
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrLogExists       = errors.New("workout log already recorded")

	// Validation errors
	ErrInvalidDuration = errors.New("duration must be non-negative")
	ErrInvalidDate     = errors.New("invalid calendar date")
	ErrInvalidMonth    = errors.New("month must be formatted as YYYY-MM")

	// Notification errors
	ErrNoPushToken      = errors.New("user has no push token")
	ErrNoTrustedContact = errors.New("user has no trusted contact email")
	ErrEmptyBatch       = errors.New("notification batch is empty")

	// Classifier errors
	ErrClassifierUnavailable = errors.New("sentiment classifier unreachable")
)
