package progress

import (
	"errors"
	"testing"

	"github.com/phildaponte/senior-strength/internal/domain"
	"github.com/phildaponte/senior-strength/internal/infra/sqlite"
)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.UpsertUser(domain.User{ID: "u1", Email: "u1@example.com"}); err != nil {
		t.Fatalf("UpsertUser() error: %v", err)
	}
	return db
}

// ─── Pure Recompute ─────────────────────────────────────────────────────────

func TestRecomputeStreak_Empty(t *testing.T) {
	state := RecomputeStreak(nil, d(t, "2025-06-15"))
	if state.Current != 0 || state.Longest != 0 {
		t.Errorf("state = %d/%d, want 0/0", state.Current, state.Longest)
	}
	if !state.LastDate.IsZero() {
		t.Errorf("LastDate = %s, want zero", state.LastDate)
	}
}

func TestRecomputeStreak_RunEndingToday(t *testing.T) {
	logs := []domain.WorkoutLog{
		logOn(t, "2025-06-13", 600),
		logOn(t, "2025-06-14", 600),
		logOn(t, "2025-06-15", 600),
	}
	state := RecomputeStreak(logs, d(t, "2025-06-15"))
	if state.Current != 3 {
		t.Errorf("Current = %d, want 3", state.Current)
	}
	if state.Longest != 3 {
		t.Errorf("Longest = %d, want 3", state.Longest)
	}
	if state.LastDate.String() != "2025-06-15" {
		t.Errorf("LastDate = %s, want 2025-06-15", state.LastDate)
	}
}

// A run ending yesterday still counts — the streak survives until a full
// day has been missed.
func TestRecomputeStreak_RunEndingYesterday(t *testing.T) {
	logs := []domain.WorkoutLog{
		logOn(t, "2025-06-13", 600),
		logOn(t, "2025-06-14", 600),
	}
	state := RecomputeStreak(logs, d(t, "2025-06-15"))
	if state.Current != 2 {
		t.Errorf("Current = %d, want 2", state.Current)
	}
}

func TestRecomputeStreak_BrokenByFullMissedDay(t *testing.T) {
	logs := []domain.WorkoutLog{
		logOn(t, "2025-06-12", 600),
		logOn(t, "2025-06-13", 600),
	}
	state := RecomputeStreak(logs, d(t, "2025-06-15"))
	if state.Current != 0 {
		t.Errorf("Current = %d, want 0 after a missed day", state.Current)
	}
	if state.Longest != 2 {
		t.Errorf("Longest = %d, want 2", state.Longest)
	}
}

func TestRecomputeStreak_LongestFromHistory(t *testing.T) {
	logs := []domain.WorkoutLog{
		// Old 4-day run
		logOn(t, "2025-05-01", 600),
		logOn(t, "2025-05-02", 600),
		logOn(t, "2025-05-03", 600),
		logOn(t, "2025-05-04", 600),
		// Current 2-day run
		logOn(t, "2025-06-14", 600),
		logOn(t, "2025-06-15", 600),
	}
	state := RecomputeStreak(logs, d(t, "2025-06-15"))
	if state.Current != 2 {
		t.Errorf("Current = %d, want 2", state.Current)
	}
	if state.Longest != 4 {
		t.Errorf("Longest = %d, want 4", state.Longest)
	}
}

func TestRecomputeStreak_DuplicateDayLogsCountOnce(t *testing.T) {
	logs := []domain.WorkoutLog{
		logOn(t, "2025-06-14", 600),
		logOn(t, "2025-06-14", 300),
		logOn(t, "2025-06-15", 600),
	}
	state := RecomputeStreak(logs, d(t, "2025-06-15"))
	if state.Current != 2 {
		t.Errorf("Current = %d, want 2", state.Current)
	}
}

// ─── StreakState Transition ─────────────────────────────────────────────────

func TestStreakState_Advance(t *testing.T) {
	day := d(t, "2025-06-15")

	var s domain.StreakState
	s = s.Advance(day, false)
	if s.Current != 1 || s.Longest != 1 {
		t.Fatalf("state = %d/%d, want 1/1", s.Current, s.Longest)
	}

	// Same day again is a no-op.
	s = s.Advance(day, true)
	if s.Current != 1 {
		t.Errorf("Current = %d, want 1 after same-day advance", s.Current)
	}

	s = s.Advance(day.AddDays(1), true)
	if s.Current != 2 || s.Longest != 2 {
		t.Errorf("state = %d/%d, want 2/2", s.Current, s.Longest)
	}

	// Gap resets current, keeps longest.
	s = s.Advance(day.AddDays(5), false)
	if s.Current != 1 || s.Longest != 2 {
		t.Errorf("state = %d/%d, want 1/2", s.Current, s.Longest)
	}
}

// ─── Tracker over the Store ─────────────────────────────────────────────────

func TestStreakTracker_RecordValidation(t *testing.T) {
	tracker := NewStreakTracker(testDB(t))

	_, err := tracker.Record(domain.WorkoutLog{
		ID: "l1", UserID: "u1", Date: d(t, "2025-06-15"), DurationSeconds: -1,
	})
	if !errors.Is(err, domain.ErrInvalidDuration) {
		t.Errorf("err = %v, want ErrInvalidDuration", err)
	}

	_, err = tracker.Record(domain.WorkoutLog{
		ID: "l1", UserID: "u1", DurationSeconds: 60,
	})
	if !errors.Is(err, domain.ErrInvalidDate) {
		t.Errorf("err = %v, want ErrInvalidDate", err)
	}
}

func TestStreakTracker_Reconcile(t *testing.T) {
	db := testDB(t)
	tracker := NewStreakTracker(db)

	for _, day := range []string{"2025-06-12", "2025-06-13", "2025-06-14"} {
		if _, err := tracker.Record(domain.WorkoutLog{
			ID: "l" + day, UserID: "u1", WorkoutID: "w1",
			Date: d(t, day), DurationSeconds: 600,
		}); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}

	// Corrupt the stored counters, then reconcile.
	if err := db.SetStreak("u1", domain.StreakState{Current: 99, Longest: 99}); err != nil {
		t.Fatalf("SetStreak() error: %v", err)
	}

	state, err := tracker.Reconcile("u1", d(t, "2025-06-15"))
	if err != nil {
		t.Fatalf("Reconcile() error: %v", err)
	}
	if state.Current != 3 || state.Longest != 3 {
		t.Errorf("state = %d/%d, want 3/3", state.Current, state.Longest)
	}

	stored, err := tracker.Current("u1")
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if stored.Current != 3 {
		t.Errorf("stored Current = %d, want 3", stored.Current)
	}
}
