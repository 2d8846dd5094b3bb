// Package progress implements the scoring engine: stats aggregation,
// XP/levels, streaks, badges, achievements, and the calendar grid.
// Everything except the streak tracker is a pure projection — recomputed
// on every read, no shared mutable cache.
package progress

import (
	"github.com/phildaponte/senior-strength/internal/domain"
)

// TotalStats computes cumulative counters over a set of logs.
// Minutes are rounded half-up from the summed seconds.
func TotalStats(logs []domain.WorkoutLog) domain.TotalStats {
	var seconds int
	for _, l := range logs {
		if l.DurationSeconds > 0 {
			seconds += l.DurationSeconds
		}
	}
	return domain.TotalStats{
		TotalWorkouts: len(logs),
		TotalMinutes:  (seconds + 30) / 60,
	}
}

// TimeWindowStats counts logs in the trailing week, month, and year windows
// ending at now. The windows are independent filters over the full set, not
// cumulative buckets.
func TimeWindowStats(logs []domain.WorkoutLog, now domain.Date) domain.TimeWindowStats {
	weekCutoff := now.AddDays(-7)
	monthCutoff := domain.DateOf(now.Time().AddDate(0, -1, 0))
	yearCutoff := domain.DateOf(now.Time().AddDate(-1, 0, 0))

	var stats domain.TimeWindowStats
	for _, l := range logs {
		if !l.Date.Before(weekCutoff) {
			stats.ThisWeek++
		}
		if !l.Date.Before(monthCutoff) {
			stats.ThisMonth++
		}
		if !l.Date.Before(yearCutoff) {
			stats.ThisYear++
		}
	}
	return stats
}

// Snapshot assembles the stats snapshot consumed by the badge and
// achievement rules. Missing sentiment counts as neutral, so only explicit
// positive tags feed PositiveMoodCount.
//
// WeeklyConsistencyWeeks keeps the original approximation
// (totalWorkouts / 4) rather than a true rolling-week coverage check.
func Snapshot(logs []domain.WorkoutLog, streak domain.StreakState, now domain.Date) domain.ProgressStats {
	totals := TotalStats(logs)
	windows := TimeWindowStats(logs, now)

	positive := 0
	for _, l := range logs {
		if l.Sentiment == domain.SentimentPositive {
			positive++
		}
	}

	return domain.ProgressStats{
		TotalWorkouts:          totals.TotalWorkouts,
		TotalMinutes:           totals.TotalMinutes,
		ThisWeekWorkouts:       windows.ThisWeek,
		ThisMonthWorkouts:      windows.ThisMonth,
		ThisYearWorkouts:       windows.ThisYear,
		CurrentStreak:          streak.Current,
		LongestStreak:          streak.Longest,
		PositiveMoodCount:      positive,
		WeeklyConsistencyWeeks: totals.TotalWorkouts / 4,
	}
}
