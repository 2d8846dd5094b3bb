package progress

import (
	"sort"

	"github.com/phildaponte/senior-strength/internal/domain"
)

// achievementDef binds a catalog entry to the stat it tracks.
type achievementDef struct {
	id          string
	title       string
	description string
	icon        string
	target      int
	metric      func(domain.ProgressStats) int
}

// achievementCatalog is the fixed catalog, in display order.
var achievementCatalog = []achievementDef{
	{
		id: "first_workout", title: "First Steps",
		description: "Complete your first workout", icon: "🎯", target: 1,
		metric: func(s domain.ProgressStats) int { return s.TotalWorkouts },
	},
	{
		id: "week_warrior", title: "Week Warrior",
		description: "Complete 7 workouts", icon: "💪", target: 7,
		metric: func(s domain.ProgressStats) int { return s.TotalWorkouts },
	},
	{
		id: "consistency_king", title: "Consistency Champion",
		description: "Maintain a 7-day streak", icon: "🔥", target: 7,
		metric: func(s domain.ProgressStats) int { return s.CurrentStreak },
	},
	{
		id: "time_master", title: "Time Master",
		description: "Exercise for 300 minutes total", icon: "⏰", target: 300,
		metric: func(s domain.ProgressStats) int { return s.TotalMinutes },
	},
	{
		id: "monthly_hero", title: "Monthly Hero",
		description: "Complete 20 workouts in a month", icon: "🏆", target: 20,
		metric: func(s domain.ProgressStats) int { return s.ThisMonthWorkouts },
	},
	{
		id: "streak_master", title: "Streak Master",
		description: "Maintain a 30-day streak", icon: "⚡", target: 30,
		metric: func(s domain.ProgressStats) int { return s.CurrentStreak },
	},
	{
		id: "century_club", title: "Century Club",
		description: "Complete 100 workouts", icon: "🌟", target: 100,
		metric: func(s domain.ProgressStats) int { return s.TotalWorkouts },
	},
	{
		id: "endurance_expert", title: "Endurance Expert",
		description: "Exercise for 1000 minutes total", icon: "🏃", target: 1000,
		metric: func(s domain.ProgressStats) int { return s.TotalMinutes },
	},
}

// Achievements regenerates the full achievement list from a stats snapshot.
// Progress is clamped to the target for display; unlocked compares the raw
// metric. Catalog order is preserved — callers re-sort if they want.
func Achievements(stats domain.ProgressStats) []domain.Achievement {
	out := make([]domain.Achievement, 0, len(achievementCatalog))
	for _, def := range achievementCatalog {
		raw := def.metric(stats)
		progress := raw
		if progress > def.target {
			progress = def.target
		}
		out = append(out, domain.Achievement{
			ID:          def.id,
			Title:       def.title,
			Description: def.description,
			Icon:        def.icon,
			Progress:    progress,
			Target:      def.target,
			Unlocked:    raw >= def.target,
		})
	}
	return out
}

// SortAchievements orders unlocked first, then by completion percentage
// descending. Ties keep catalog order (the sort is stable).
func SortAchievements(achievements []domain.Achievement) []domain.Achievement {
	sorted := make([]domain.Achievement, len(achievements))
	copy(sorted, achievements)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Unlocked != sorted[j].Unlocked {
			return sorted[i].Unlocked
		}
		return sorted[i].CompletionPct() > sorted[j].CompletionPct()
	})
	return sorted
}

// NextAchievement returns the locked achievement closest to completion,
// or nil when everything is unlocked.
func NextAchievement(achievements []domain.Achievement) *domain.Achievement {
	var next *domain.Achievement
	for i := range achievements {
		a := &achievements[i]
		if a.Unlocked {
			continue
		}
		if next == nil || a.CompletionPct() > next.CompletionPct() {
			next = a
		}
	}
	return next
}
