package progress

import (
	"github.com/phildaponte/senior-strength/internal/domain"
)

// Badge catalog: fixed thresholds, independently evaluated. Badges are not
// mutually exclusive and carry no partial credit — a stat snapshot either
// crosses the threshold or it doesn't.
func BadgeCatalog() []domain.BadgeDef {
	return []domain.BadgeDef{
		{
			ID: "first_workout", Name: "First Steps",
			Description: "Complete your first workout", Emoji: "🎯",
			Predicate: func(s domain.ProgressStats) bool { return s.TotalWorkouts >= 1 },
		},
		{
			ID: "streak_3", Name: "3-Day Streak",
			Description: "Work out for 3 consecutive days", Emoji: "🔥",
			Predicate: func(s domain.ProgressStats) bool { return s.LongestStreak >= 3 },
		},
		{
			ID: "streak_7", Name: "Weekly Warrior",
			Description: "Work out for 7 consecutive days", Emoji: "⚡",
			Predicate: func(s domain.ProgressStats) bool { return s.LongestStreak >= 7 },
		},
		{
			ID: "streak_30", Name: "Monthly Master",
			Description: "Work out for 30 consecutive days", Emoji: "👑",
			Predicate: func(s domain.ProgressStats) bool { return s.LongestStreak >= 30 },
		},
		{
			ID: "workout_10", Name: "Perfect 10",
			Description: "Complete 10 total workouts", Emoji: "💪",
			Predicate: func(s domain.ProgressStats) bool { return s.TotalWorkouts >= 10 },
		},
		{
			ID: "workout_50", Name: "Half Century",
			Description: "Complete 50 total workouts", Emoji: "🏆",
			Predicate: func(s domain.ProgressStats) bool { return s.TotalWorkouts >= 50 },
		},
		{
			ID: "workout_100", Name: "Century Club",
			Description: "Complete 100 total workouts", Emoji: "🎖️",
			Predicate: func(s domain.ProgressStats) bool { return s.TotalWorkouts >= 100 },
		},
		{
			ID: "minutes_60", Name: "Hour Power",
			Description: "Exercise for 60+ minutes total", Emoji: "⏰",
			Predicate: func(s domain.ProgressStats) bool { return s.TotalMinutes >= 60 },
		},
		{
			ID: "minutes_300", Name: "5-Hour Hero",
			Description: "Exercise for 300+ minutes total", Emoji: "🌟",
			Predicate: func(s domain.ProgressStats) bool { return s.TotalMinutes >= 300 },
		},
		{
			ID: "minutes_1000", Name: "Time Champion",
			Description: "Exercise for 1000+ minutes total", Emoji: "🚀",
			Predicate: func(s domain.ProgressStats) bool { return s.TotalMinutes >= 1000 },
		},
		{
			ID: "positive_mood", Name: "Mood Booster",
			Description: "Log 5 positive workout experiences", Emoji: "😊",
			Predicate: func(s domain.ProgressStats) bool { return s.PositiveMoodCount >= 5 },
		},
		{
			ID: "consistency", Name: "Steady Eddie",
			Description: "Work out at least once per week for 4 weeks", Emoji: "📈",
			Predicate: func(s domain.ProgressStats) bool { return s.WeeklyConsistencyWeeks >= 4 },
		},
	}
}

// EarnedBadges evaluates every badge rule against the stats snapshot and
// returns the earned IDs. Stateless and idempotent; the result is a set —
// order carries no meaning.
func EarnedBadges(stats domain.ProgressStats) []string {
	var earned []string
	for _, def := range BadgeCatalog() {
		if def.Predicate(stats) {
			earned = append(earned, def.ID)
		}
	}
	return earned
}

// BadgeStatuses pairs the full catalog with one user's earned flags.
func BadgeStatuses(stats domain.ProgressStats) []domain.Badge {
	badges := make([]domain.Badge, 0, len(BadgeCatalog()))
	for _, def := range BadgeCatalog() {
		badges = append(badges, domain.Badge{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Emoji:       def.Emoji,
			Earned:      def.Predicate(stats),
		})
	}
	return badges
}
