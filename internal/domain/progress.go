package domain

// ─── Aggregated Stats ───────────────────────────────────────────────────────

// TotalStats are cumulative counters over a user's full log history.
type TotalStats struct {
	TotalWorkouts int `json:"total_workouts"`
	TotalMinutes  int `json:"total_minutes"`
}

// TimeWindowStats counts logs inside independent trailing windows.
// A 3-day-old log counts toward all three at once.
type TimeWindowStats struct {
	ThisWeek  int `json:"this_week"`
	ThisMonth int `json:"this_month"`
	ThisYear  int `json:"this_year"`
}

// LevelInfo is the game-like progression derived from cumulative totals.
type LevelInfo struct {
	Level       int `json:"level"`
	XP          int `json:"xp"` // within-level, 0–99
	NextLevelXP int `json:"next_level_xp"`
}

// ProgressStats is the snapshot fed to the badge and achievement rules.
type ProgressStats struct {
	TotalWorkouts          int `json:"total_workouts"`
	TotalMinutes           int `json:"total_minutes"`
	ThisWeekWorkouts       int `json:"this_week_workouts"`
	ThisMonthWorkouts      int `json:"this_month_workouts"`
	ThisYearWorkouts       int `json:"this_year_workouts"`
	CurrentStreak          int `json:"current_streak"`
	LongestStreak          int `json:"longest_streak"`
	PositiveMoodCount      int `json:"positive_mood_count"`
	WeeklyConsistencyWeeks int `json:"weekly_consistency_weeks"`
}

// ─── Badges ─────────────────────────────────────────────────────────────────

// BadgeDef is a static catalog entry. Earned status is derived per user by
// the badge rules, never stored on the catalog.
type BadgeDef struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Emoji       string                   `json:"emoji"`
	Predicate   func(ProgressStats) bool `json:"-"`
}

// Badge is a catalog entry paired with one user's earned flag, for display.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	Earned      bool   `json:"earned"`
}

// ─── Achievements ───────────────────────────────────────────────────────────

// Achievement is a progress-tracked goal with a visible current/target
// ratio, distinct from a badge's pure boolean. Regenerated fresh on every
// evaluation, never persisted.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Progress    int    `json:"progress"` // clamped to Target
	Target      int    `json:"target"`
	Unlocked    bool   `json:"unlocked"`
}

// CompletionPct returns the completion percentage (0–100, rounded).
func (a Achievement) CompletionPct() int {
	if a.Target <= 0 {
		return 100
	}
	return int(float64(a.Progress)/float64(a.Target)*100 + 0.5)
}

// ─── Calendar ───────────────────────────────────────────────────────────────

// CalendarDay is one cell of the 42-cell month grid. Ephemeral —
// regenerated per month-view request.
type CalendarDay struct {
	Date           Date `json:"date"`
	HasWorkout     bool `json:"has_workout"`
	WorkoutCount   int  `json:"workout_count"`
	DayOfWeek      int  `json:"day_of_week"` // Sunday = 0
	IsToday        bool `json:"is_today"`
	IsCurrentMonth bool `json:"is_current_month"`
	TotalMinutes   int  `json:"total_minutes,omitempty"`
}
