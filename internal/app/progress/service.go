package progress

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/phildaponte/senior-strength/internal/domain"
	"github.com/phildaponte/senior-strength/internal/infra/sqlite"
)

// Service composes the pure scoring functions over the store for the API
// layer. Derived state is recomputed on every read — staleness is traded
// for redundant computation, which is cheap at per-user data volumes.
type Service struct {
	db      *sqlite.DB
	streaks *StreakTracker
}

// NewService creates a progress service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db, streaks: NewStreakTracker(db)}
}

// Streaks exposes the streak tracker (single writer of the counters).
func (s *Service) Streaks() *StreakTracker {
	return s.streaks
}

// Summary is the full progress view for one user.
type Summary struct {
	Stats        domain.ProgressStats `json:"stats"`
	Level        domain.LevelInfo     `json:"level"`
	Badges       []domain.Badge       `json:"badges"`
	Achievements []domain.Achievement `json:"achievements"`
	Message      string               `json:"message"`
}

// Summarize recomputes the complete progress state for a user as of now.
func (s *Service) Summarize(userID string, now domain.Date) (*Summary, error) {
	logs, err := s.db.LogsByUser(userID, domain.Date{}, domain.Date{})
	if err != nil {
		return nil, fmt.Errorf("load logs: %w", err)
	}
	streak, err := s.db.GetStreak(userID)
	if err != nil {
		return nil, fmt.Errorf("load streak: %w", err)
	}

	stats := Snapshot(logs, streak, now)
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &Summary{
		Stats:        stats,
		Level:        LevelInfo(stats.TotalWorkouts, stats.TotalMinutes),
		Badges:       BadgeStatuses(stats),
		Achievements: SortAchievements(Achievements(stats)),
		Message:      MotivationalMessage(stats, r),
	}, nil
}

// Calendar generates the 42-cell grid for the month containing target.
// Only logs that can land in the grid are fetched.
func (s *Service) Calendar(userID string, target, today domain.Date) ([]domain.CalendarDay, error) {
	first := target.FirstOfMonth()
	start := first.AddDays(-int(first.Weekday()))
	end := start.AddDays(gridCells - 1)

	logs, err := s.db.LogsByUser(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load logs: %w", err)
	}
	return MonthGrid(logs, target, today), nil
}

// RefreshBadgeCache recomputes the earned set and overwrites the
// denormalized display copy. The rules stay authoritative — this cache is
// never read back into scoring.
func (s *Service) RefreshBadgeCache(userID string, now domain.Date) error {
	logs, err := s.db.LogsByUser(userID, domain.Date{}, domain.Date{})
	if err != nil {
		return fmt.Errorf("load logs: %w", err)
	}
	streak, err := s.db.GetStreak(userID)
	if err != nil {
		return fmt.Errorf("load streak: %w", err)
	}
	earned := EarnedBadges(Snapshot(logs, streak, now))
	return s.db.ReplaceBadgeCache(userID, earned)
}
