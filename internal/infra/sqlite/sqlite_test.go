package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/phildaponte/senior-strength/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *DB, id string) {
	t.Helper()
	err := db.UpsertUser(domain.User{
		ID:       id,
		FullName: "Margaret Chen",
		Email:    "margaret@example.com",
	})
	if err != nil {
		t.Fatalf("UpsertUser() error: %v", err)
	}
}

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) error: %v", s, err)
	}
	return d
}

// ─── Database Lifecycle ─────────────────────────────────────────────────────

func TestOpen_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(dir, "progress.db")); os.IsNotExist(err) {
		t.Error("progress.db should exist")
	}
}

func TestOpen_Ping(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}
}

// ─── Users ──────────────────────────────────────────────────────────────────

func TestUpsertUser_InsertAndGet(t *testing.T) {
	db := newTestDB(t)

	u := domain.User{
		ID:                  "u1",
		FullName:            "Margaret Chen",
		Email:               "margaret@example.com",
		PushToken:           "ExponentPushToken[abc]",
		Subscribed:          true,
		TrustedContactEmail: "daughter@example.com",
	}
	if err := db.UpsertUser(u); err != nil {
		t.Fatalf("UpsertUser() error: %v", err)
	}

	got, err := db.GetUser("u1")
	if err != nil {
		t.Fatalf("GetUser() error: %v", err)
	}
	if got.FullName != "Margaret Chen" {
		t.Errorf("FullName = %q, want %q", got.FullName, "Margaret Chen")
	}
	if got.PushToken != "ExponentPushToken[abc]" {
		t.Errorf("PushToken = %q", got.PushToken)
	}
	if got.TrustedContactEmail != "daughter@example.com" {
		t.Errorf("TrustedContactEmail = %q", got.TrustedContactEmail)
	}
}

func TestUpsertUser_PreservesStreakCounters(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1")

	state := domain.StreakState{Current: 4, Longest: 9, LastDate: mustDate(t, "2025-06-10")}
	if err := db.SetStreak("u1", state); err != nil {
		t.Fatalf("SetStreak() error: %v", err)
	}

	// Profile update must not reset the counters.
	seedUser(t, db, "u1")

	got, err := db.GetStreak("u1")
	if err != nil {
		t.Fatalf("GetStreak() error: %v", err)
	}
	if got.Current != 4 || got.Longest != 9 {
		t.Errorf("streak = %d/%d, want 4/9", got.Current, got.Longest)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetUser("missing")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestListPushEligible(t *testing.T) {
	db := newTestDB(t)

	db.UpsertUser(domain.User{ID: "a", Email: "a@x.com", PushToken: "tok-a", Subscribed: true})
	db.UpsertUser(domain.User{ID: "b", Email: "b@x.com", Subscribed: true}) // no token
	db.UpsertUser(domain.User{ID: "c", Email: "c@x.com", PushToken: "tok-c", Subscribed: true})

	users, err := db.ListPushEligible()
	if err != nil {
		t.Fatalf("ListPushEligible() error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	for _, u := range users {
		if u.PushToken == "" {
			t.Errorf("user %s has no push token", u.ID)
		}
	}
}

func TestListWithTrustedContact(t *testing.T) {
	db := newTestDB(t)

	db.UpsertUser(domain.User{ID: "a", Email: "a@x.com", TrustedContactEmail: "fam@x.com"})
	db.UpsertUser(domain.User{ID: "b", Email: "b@x.com"})

	users, err := db.ListWithTrustedContact()
	if err != nil {
		t.Fatalf("ListWithTrustedContact() error: %v", err)
	}
	if len(users) != 1 || users[0].ID != "a" {
		t.Fatalf("users = %+v, want only a", users)
	}
}

// ─── Workout Log + Streak Transaction ───────────────────────────────────────

func TestRecordWorkout_StartsStreak(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1")

	state, err := db.RecordWorkout(domain.WorkoutLog{
		ID: "l1", UserID: "u1", WorkoutID: "w1",
		Date: mustDate(t, "2025-06-10"), DurationSeconds: 600,
	})
	if err != nil {
		t.Fatalf("RecordWorkout() error: %v", err)
	}
	if state.Current != 1 || state.Longest != 1 {
		t.Errorf("streak = %d/%d, want 1/1", state.Current, state.Longest)
	}
}

func TestRecordWorkout_ConsecutiveDays(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1")

	days := []string{"2025-06-10", "2025-06-11", "2025-06-12"}
	var state domain.StreakState
	var err error
	for i, day := range days {
		state, err = db.RecordWorkout(domain.WorkoutLog{
			ID: "l" + day, UserID: "u1", WorkoutID: "w1",
			Date: mustDate(t, day), DurationSeconds: 600,
		})
		if err != nil {
			t.Fatalf("RecordWorkout(%d) error: %v", i, err)
		}
	}
	if state.Current != 3 || state.Longest != 3 {
		t.Errorf("streak = %d/%d, want 3/3", state.Current, state.Longest)
	}
}

func TestRecordWorkout_GapResetsStreak(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1")

	for _, day := range []string{"2025-06-10", "2025-06-11", "2025-06-12"} {
		if _, err := db.RecordWorkout(domain.WorkoutLog{
			ID: "l" + day, UserID: "u1", WorkoutID: "w1",
			Date: mustDate(t, day), DurationSeconds: 600,
		}); err != nil {
			t.Fatalf("RecordWorkout() error: %v", err)
		}
	}

	// Skip 2025-06-13.
	state, err := db.RecordWorkout(domain.WorkoutLog{
		ID: "l4", UserID: "u1", WorkoutID: "w1",
		Date: mustDate(t, "2025-06-14"), DurationSeconds: 600,
	})
	if err != nil {
		t.Fatalf("RecordWorkout() error: %v", err)
	}
	if state.Current != 1 {
		t.Errorf("Current = %d, want 1 after gap", state.Current)
	}
	if state.Longest != 3 {
		t.Errorf("Longest = %d, want 3 preserved", state.Longest)
	}
}

func TestRecordWorkout_SecondLogSameDayDoesNotDoubleCount(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1")

	day := mustDate(t, "2025-06-10")
	if _, err := db.RecordWorkout(domain.WorkoutLog{
		ID: "l1", UserID: "u1", WorkoutID: "w1", Date: day, DurationSeconds: 600,
	}); err != nil {
		t.Fatalf("first RecordWorkout() error: %v", err)
	}

	state, err := db.RecordWorkout(domain.WorkoutLog{
		ID: "l2", UserID: "u1", WorkoutID: "w2", Date: day, DurationSeconds: 300,
	})
	if err != nil {
		t.Fatalf("second RecordWorkout() error: %v", err)
	}
	if state.Current != 1 {
		t.Errorf("Current = %d, want 1 (same-day logs count once)", state.Current)
	}

	logs, err := db.LogsByUser("u1", domain.Date{}, domain.Date{})
	if err != nil {
		t.Fatalf("LogsByUser() error: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("len(logs) = %d, want 2", len(logs))
	}
}

func TestRecordWorkout_DuplicateID(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1")

	entry := domain.WorkoutLog{
		ID: "l1", UserID: "u1", WorkoutID: "w1",
		Date: mustDate(t, "2025-06-10"), DurationSeconds: 600,
	}
	if _, err := db.RecordWorkout(entry); err != nil {
		t.Fatalf("first RecordWorkout() error: %v", err)
	}
	if _, err := db.RecordWorkout(entry); !errors.Is(err, domain.ErrLogExists) {
		t.Errorf("err = %v, want ErrLogExists", err)
	}
}

func TestRecordWorkout_UnknownUser(t *testing.T) {
	db := newTestDB(t)

	_, err := db.RecordWorkout(domain.WorkoutLog{
		ID: "l1", UserID: "ghost", WorkoutID: "w1",
		Date: mustDate(t, "2025-06-10"), DurationSeconds: 600,
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestLogsByUser_DateRange(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1")

	for _, day := range []string{"2025-06-01", "2025-06-10", "2025-06-20"} {
		if _, err := db.RecordWorkout(domain.WorkoutLog{
			ID: "l" + day, UserID: "u1", WorkoutID: "w1",
			Date: mustDate(t, day), DurationSeconds: 600,
		}); err != nil {
			t.Fatalf("RecordWorkout() error: %v", err)
		}
	}

	logs, err := db.LogsByUser("u1", mustDate(t, "2025-06-05"), mustDate(t, "2025-06-15"))
	if err != nil {
		t.Fatalf("LogsByUser() error: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("len = %d, want 1", len(logs))
	}
	if logs[0].Date.String() != "2025-06-10" {
		t.Errorf("Date = %s, want 2025-06-10", logs[0].Date)
	}
}

func TestLastLogDate(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1")

	last, err := db.LastLogDate("u1")
	if err != nil {
		t.Fatalf("LastLogDate() error: %v", err)
	}
	if !last.IsZero() {
		t.Errorf("LastLogDate = %s, want zero for no logs", last)
	}

	for _, day := range []string{"2025-06-10", "2025-06-08"} {
		if _, err := db.RecordWorkout(domain.WorkoutLog{
			ID: "l" + day, UserID: "u1", WorkoutID: "w1",
			Date: mustDate(t, day), DurationSeconds: 600,
		}); err != nil {
			t.Fatalf("RecordWorkout() error: %v", err)
		}
	}

	last, err = db.LastLogDate("u1")
	if err != nil {
		t.Fatalf("LastLogDate() error: %v", err)
	}
	if last.String() != "2025-06-10" {
		t.Errorf("LastLogDate = %s, want 2025-06-10", last)
	}
}

// ─── Journal ────────────────────────────────────────────────────────────────

func TestJournalEntries_JoinsTitleAndLimits(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1")
	db.UpsertWorkout(domain.Workout{ID: "w1", Title: "Chair Yoga", DurationMinutes: 15})

	days := []string{"2025-06-08", "2025-06-09", "2025-06-10", "2025-06-11"}
	for _, day := range days {
		if _, err := db.RecordWorkout(domain.WorkoutLog{
			ID: "l" + day, UserID: "u1", WorkoutID: "w1",
			Date: mustDate(t, day), DurationSeconds: 600,
			JournalText: "felt good on " + day, Sentiment: domain.SentimentPositive,
		}); err != nil {
			t.Fatalf("RecordWorkout() error: %v", err)
		}
	}

	entries, err := db.JournalEntries("u1", domain.Date{}, domain.Date{}, 3)
	if err != nil {
		t.Fatalf("JournalEntries() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	if entries[0].Date.String() != "2025-06-11" {
		t.Errorf("first entry date = %s, want most recent", entries[0].Date)
	}
	if entries[0].WorkoutTitle != "Chair Yoga" {
		t.Errorf("WorkoutTitle = %q, want Chair Yoga", entries[0].WorkoutTitle)
	}
	if entries[0].Sentiment != domain.SentimentPositive {
		t.Errorf("Sentiment = %q", entries[0].Sentiment)
	}
}

func TestJournalEntries_SkipsEmptyJournals(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1")

	if _, err := db.RecordWorkout(domain.WorkoutLog{
		ID: "l1", UserID: "u1", WorkoutID: "w1",
		Date: mustDate(t, "2025-06-10"), DurationSeconds: 600,
	}); err != nil {
		t.Fatalf("RecordWorkout() error: %v", err)
	}

	entries, err := db.JournalEntries("u1", domain.Date{}, domain.Date{}, 10)
	if err != nil {
		t.Fatalf("JournalEntries() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len = %d, want 0 for journal-less logs", len(entries))
	}
}

// ─── Badge Cache ────────────────────────────────────────────────────────────

func TestBadgeCache_ReplaceAndRead(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1")

	if err := db.ReplaceBadgeCache("u1", []string{"first_workout", "streak_3"}); err != nil {
		t.Fatalf("ReplaceBadgeCache() error: %v", err)
	}
	if err := db.ReplaceBadgeCache("u1", []string{"first_workout"}); err != nil {
		t.Fatalf("second ReplaceBadgeCache() error: %v", err)
	}

	ids, err := db.CachedBadges("u1")
	if err != nil {
		t.Fatalf("CachedBadges() error: %v", err)
	}
	if len(ids) != 1 || ids[0] != "first_workout" {
		t.Errorf("ids = %v, want [first_workout]", ids)
	}
}
