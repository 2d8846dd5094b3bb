package domain

// WeeklyStats summarizes one user's trailing 7-day window for the digest.
type WeeklyStats struct {
	TotalWorkouts int            `json:"total_workouts"`
	TotalMinutes  int            `json:"total_minutes"`
	ActiveDays    int            `json:"active_days"`
	CurrentStreak int            `json:"current_streak"`
	Sentiment     SentimentTally `json:"sentiment_summary"`
	WorkoutDays   []Date         `json:"workout_days"` // distinct days with ≥1 log
}

// SentimentTally counts journal entries per sentiment label.
type SentimentTally struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Total returns the number of tallied entries.
func (t SentimentTally) Total() int {
	return t.Positive + t.Neutral + t.Negative
}

// JournalExcerpt is one journal entry quoted in the weekly digest.
type JournalExcerpt struct {
	Date         Date      `json:"date"`
	Text         string    `json:"text"`
	Sentiment    Sentiment `json:"sentiment_tag"`
	WorkoutTitle string    `json:"workout_title"`
}

// WeeklyDigest is the composed report sent to a user's trusted contact.
type WeeklyDigest struct {
	UserID    string           `json:"user_id"`
	UserName  string           `json:"user_name"`
	WeekStart Date             `json:"week_start"`
	WeekEnd   Date             `json:"week_end"`
	Stats     WeeklyStats      `json:"stats"`
	Journal   []JournalExcerpt `json:"journal"` // at most 3, most recent first
}
