package progress

import (
	"math/rand"

	"github.com/phildaponte/senior-strength/internal/domain"
)

// XP rules: 10 XP per workout plus 1 XP per 5 minutes, 100 XP per level.
const (
	xpPerWorkout   = 10
	minutesPerXP   = 5
	xpPerLevel     = 100
)

// LevelInfo maps cumulative totals to the displayed level and within-level
// XP. Pure and monotonic: growing either input never lowers the level.
func LevelInfo(totalWorkouts, totalMinutes int) domain.LevelInfo {
	totalXP := totalWorkouts*xpPerWorkout + totalMinutes/minutesPerXP
	return domain.LevelInfo{
		Level:       totalXP/xpPerLevel + 1,
		XP:          totalXP % xpPerLevel,
		NextLevelXP: xpPerLevel,
	}
}

// motivationalMessages by progress tier.
var motivationalMessages = map[string][]string{
	"beginner": {
		"Every journey begins with a single step!",
		"You're building healthy habits one day at a time!",
		"Great job starting your fitness journey!",
	},
	"intermediate": {
		"You're making excellent progress! Keep it up!",
		"Your consistency is paying off!",
		"You're becoming stronger every day!",
	},
	"advanced": {
		"You're a fitness champion! Incredible dedication!",
		"Your commitment is truly inspiring!",
		"You've mastered the art of consistency!",
	},
}

// MotivationalMessage picks an encouragement line for the user's tier:
// beginner below 15 workouts, intermediate below 50, advanced from 50 up.
func MotivationalMessage(stats domain.ProgressStats, r *rand.Rand) string {
	tier := "beginner"
	switch {
	case stats.TotalWorkouts >= 50:
		tier = "advanced"
	case stats.TotalWorkouts >= 15:
		tier = "intermediate"
	}
	msgs := motivationalMessages[tier]
	return msgs[r.Intn(len(msgs))]
}
