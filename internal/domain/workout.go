// Package domain holds the core types of the Senior Strength progress
// engine: workout logs, users, derived progress state, and the outbound
// notification payloads. Domain types are pure — no infrastructure
// dependency.
package domain

// Sentiment classifies the emotional tone of a journal entry.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether s is one of the three known labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Description returns a user-facing line for the sentiment.
func (s Sentiment) Description() string {
	switch s {
	case SentimentPositive:
		return "You seem to be feeling great about your workout!"
	case SentimentNegative:
		return "It sounds like the workout was challenging. Keep pushing forward!"
	default:
		return "Thanks for sharing your workout experience."
	}
}

// Emoji returns the emoji shown next to the sentiment.
func (s Sentiment) Emoji() string {
	switch s {
	case SentimentPositive:
		return "😊"
	case SentimentNegative:
		return "😔"
	default:
		return "😐"
	}
}

// Workout is a catalog entry the user can run (title shown in journal
// excerpts and digests).
type Workout struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
}

// WorkoutLog is one completed session. Immutable once created — the engine
// only ever appends logs, never mutates or deletes them.
type WorkoutLog struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	WorkoutID       string    `json:"workout_id"`
	Date            Date      `json:"date"`
	DurationSeconds int       `json:"duration_seconds"`
	JournalText     string    `json:"journal_text,omitempty"`
	Sentiment       Sentiment `json:"sentiment_tag,omitempty"` // empty until classified
}
