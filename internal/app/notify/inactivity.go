package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/phildaponte/senior-strength/internal/domain"
	"github.com/phildaponte/senior-strength/internal/infra/metrics"
	"github.com/phildaponte/senior-strength/internal/infra/sqlite"
)

// candidateDays is the minimum days-since-last-workout for a user to enter
// the scan's candidate set. A user at exactly 2 days is a candidate but
// still lands in the gentle tier (< 3).
const candidateDays = 2

// InactivityDetector scans eligible users (subscribed, with a push token),
// classifies how long each has been inactive, and dispatches a
// tier-appropriate reminder.
type InactivityDetector struct {
	db         *sqlite.DB
	dispatcher *Dispatcher
}

// NewInactivityDetector creates an inactivity detector.
func NewInactivityDetector(db *sqlite.DB, dispatcher *Dispatcher) *InactivityDetector {
	return &InactivityDetector{db: db, dispatcher: dispatcher}
}

// Run executes one scan as of today. One user's failure (query error,
// rejected send) is recorded and never aborts the batch; only a store
// failure that prevents listing candidates at all yields Success=false.
func (det *InactivityDetector) Run(ctx context.Context, today domain.Date) domain.RunSummary {
	started := time.Now()
	defer func() {
		metrics.JobDuration.WithLabelValues("inactivity_scan").Observe(time.Since(started).Seconds())
	}()

	users, err := det.db.ListPushEligible()
	if err != nil {
		return domain.RunSummary{Success: false, Error: fmt.Sprintf("list eligible users: %v", err)}
	}

	summary := domain.RunSummary{Success: true}
	inactive := 0

	for _, user := range users {
		if ctx.Err() != nil {
			break
		}

		last, err := det.db.LastLogDate(user.ID)
		if err != nil {
			log.Printf("[inactivity] user %s: last log query failed: %v", user.ID, err)
			summary.Results = append(summary.Results, domain.UserResult{
				UserID: user.ID,
				Error:  err.Error(),
			})
			summary.Processed++
			continue
		}

		days := domain.DaysInactiveNever
		if !last.IsZero() {
			days = today.DaysSince(last)
		}
		if days < candidateDays {
			continue // Still active, no reminder
		}
		inactive++

		msg := ComposeReminder(user, days)
		outcome := det.dispatcher.DispatchPush(ctx, []PushItem{{UserID: user.ID, Message: msg}})

		result := domain.UserResult{
			UserID:       user.ID,
			Recipient:    user.PushToken,
			DaysInactive: days,
			Tier:         TierFor(days),
			Message:      msg.Body,
		}
		if len(outcome.Outcomes) > 0 {
			result.Sent = outcome.Outcomes[0].Sent
			result.Error = outcome.Outcomes[0].Error
		}
		summary.Results = append(summary.Results, result)
		summary.Processed++
	}

	metrics.InactiveUsersFound.Set(float64(inactive))
	metrics.JobUsersProcessed.WithLabelValues("inactivity_scan").Add(float64(summary.Processed))
	return summary
}

// TierFor classifies days-inactive into a severity tier. Callers only
// invoke it for candidates (days ≥ 2).
func TierFor(daysInactive int) domain.InactivityTier {
	switch {
	case daysInactive >= 7:
		return domain.TierWeekPlus
	case daysInactive >= 3:
		return domain.TierStreakRisk
	default:
		return domain.TierGentle
	}
}

// ComposeReminder builds the tier-specific push payload for an inactive
// user. The streak-risk tier quotes the streak the user is about to lose.
func ComposeReminder(user domain.User, daysInactive int) domain.PushMessage {
	name := user.DisplayName()

	switch TierFor(daysInactive) {
	case domain.TierWeekPlus:
		return domain.PushMessage{
			Token: user.PushToken,
			Title: "We miss you! 💪",
			Body:  fmt.Sprintf("Hi %s, it's been a week since your last workout. Ready to get back into your routine?", name),
			Data: map[string]any{
				"type":          "inactivity_reminder",
				"days_inactive": daysInactive,
				"action":        domain.ActionOpenWorkouts,
			},
		}
	case domain.TierStreakRisk:
		return domain.PushMessage{
			Token: user.PushToken,
			Title: "Keep your streak alive! 🔥",
			Body:  fmt.Sprintf("%s, you had a %d-day streak going. Let's not break it now!", name, user.CurrentStreak),
			Data: map[string]any{
				"type":            "streak_reminder",
				"days_inactive":   daysInactive,
				"previous_streak": user.CurrentStreak,
				"action":          domain.ActionOpenWorkouts,
			},
		}
	default:
		return domain.PushMessage{
			Token: user.PushToken,
			Title: "Time for your workout! 🏋️",
			Body:  fmt.Sprintf("%s, it's been %d days since your last workout. How about a quick session?", name, daysInactive),
			Data: map[string]any{
				"type":          "gentle_reminder",
				"days_inactive": daysInactive,
				"action":        domain.ActionOpenWorkouts,
			},
		}
	}
}
