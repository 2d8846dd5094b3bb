package progress

import (
	"fmt"

	"github.com/phildaponte/senior-strength/internal/domain"
	"github.com/phildaponte/senior-strength/internal/infra/metrics"
	"github.com/phildaponte/senior-strength/internal/infra/sqlite"
)

// StreakTracker owns the two persisted streak counters. Single-writer:
// every other component reads them through here and never updates them.
type StreakTracker struct {
	db *sqlite.DB
}

// NewStreakTracker creates a streak tracker.
func NewStreakTracker(db *sqlite.DB) *StreakTracker {
	return &StreakTracker{db: db}
}

// Record appends the log and applies the streak transition atomically.
// Duplicate delivery of the same completed-workout event is a no-op for the
// counters (the transition only fires on the first log of a day).
func (t *StreakTracker) Record(entry domain.WorkoutLog) (domain.StreakState, error) {
	if entry.DurationSeconds < 0 {
		return domain.StreakState{}, domain.ErrInvalidDuration
	}
	if entry.Date.IsZero() {
		return domain.StreakState{}, domain.ErrInvalidDate
	}
	return t.db.RecordWorkout(entry)
}

// Current loads the persisted streak state.
func (t *StreakTracker) Current(userID string) (domain.StreakState, error) {
	return t.db.GetStreak(userID)
}

// Reconcile recomputes both counters from the full log history and persists
// the result. Used when the stored state is suspected stale — a crash
// between log insert and counter update, or duplicated event delivery.
// O(history), so callers trigger it on suspicion, not after every write.
func (t *StreakTracker) Reconcile(userID string, today domain.Date) (domain.StreakState, error) {
	logs, err := t.db.LogsByUser(userID, domain.Date{}, domain.Date{})
	if err != nil {
		return domain.StreakState{}, fmt.Errorf("load history: %w", err)
	}

	state := RecomputeStreak(logs, today)
	if err := t.db.SetStreak(userID, state); err != nil {
		return domain.StreakState{}, fmt.Errorf("save streak: %w", err)
	}
	metrics.StreakReconciliations.Inc()
	return state, nil
}

// RecomputeStreak derives the streak counters purely from log dates.
// The current streak is the run of consecutive days ending at today or
// yesterday (a workout earlier today keeps the streak alive, and a streak
// is not broken until a full day has been missed). The longest streak is
// the longest consecutive-day run anywhere in the history.
func RecomputeStreak(logs []domain.WorkoutLog, today domain.Date) domain.StreakState {
	days := make(map[domain.Date]bool, len(logs))
	var last domain.Date
	for _, l := range logs {
		days[l.Date] = true
		if last.IsZero() || l.Date.After(last) {
			last = l.Date
		}
	}

	var state domain.StreakState
	state.LastDate = last

	// Current: walk backward from today (or yesterday) while days exist.
	anchor := today
	if !days[anchor] {
		anchor = today.AddDays(-1)
	}
	for days[anchor] {
		state.Current++
		anchor = anchor.AddDays(-1)
	}

	// Longest: for each run start (no log the day before), walk forward.
	for day := range days {
		if days[day.AddDays(-1)] {
			continue
		}
		run := 0
		for d := day; days[d]; d = d.AddDays(1) {
			run++
		}
		if run > state.Longest {
			state.Longest = run
		}
	}

	return state
}
