// Package report composes the weekly digest sent to a user's trusted
// contact: trailing-week stats, mood tally, and journal excerpts, rendered
// to paired HTML and plain text.
package report

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/phildaponte/senior-strength/internal/app/notify"
	"github.com/phildaponte/senior-strength/internal/domain"
	"github.com/phildaponte/senior-strength/internal/infra/metrics"
	"github.com/phildaponte/senior-strength/internal/infra/sqlite"
)

// maxExcerpts caps the journal entries quoted in one digest.
const maxExcerpts = 3

// Composer builds and sends weekly digests.
type Composer struct {
	db         *sqlite.DB
	dispatcher *notify.Dispatcher
}

// NewComposer creates a digest composer.
func NewComposer(db *sqlite.DB, dispatcher *notify.Dispatcher) *Composer {
	return &Composer{db: db, dispatcher: dispatcher}
}

// BuildDigest assembles one user's digest for the trailing 7-day window
// ending today. A user with zero qualifying activity still gets a digest —
// zeros and an explicit empty journal section, never an omission.
func (c *Composer) BuildDigest(user domain.User, today domain.Date) (*domain.WeeklyDigest, error) {
	from := today.AddDays(-7)

	logs, err := c.db.LogsByUser(user.ID, from, today)
	if err != nil {
		return nil, fmt.Errorf("load week logs: %w", err)
	}

	journal, err := c.db.JournalEntries(user.ID, from, today, maxExcerpts)
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}

	return &domain.WeeklyDigest{
		UserID:    user.ID,
		UserName:  user.DisplayName(),
		WeekStart: today.AddDays(-6),
		WeekEnd:   today,
		Stats:     WeekStats(logs, user.CurrentStreak),
		Journal:   journal,
	}, nil
}

// WeekStats aggregates one week of logs. The sentiment tally counts only
// explicitly tagged entries; WorkoutDays lists distinct active days in
// ascending order.
func WeekStats(logs []domain.WorkoutLog, currentStreak int) domain.WeeklyStats {
	stats := domain.WeeklyStats{CurrentStreak: currentStreak}

	var seconds int
	seen := make(map[domain.Date]bool)
	for _, l := range logs {
		stats.TotalWorkouts++
		if l.DurationSeconds > 0 {
			seconds += l.DurationSeconds
		}
		if !seen[l.Date] {
			seen[l.Date] = true
			stats.WorkoutDays = append(stats.WorkoutDays, l.Date)
		}
		switch l.Sentiment {
		case domain.SentimentPositive:
			stats.Sentiment.Positive++
		case domain.SentimentNeutral:
			stats.Sentiment.Neutral++
		case domain.SentimentNegative:
			stats.Sentiment.Negative++
		}
	}
	stats.TotalMinutes = (seconds + 30) / 60
	stats.ActiveDays = len(stats.WorkoutDays)
	return stats
}

// SendDigest renders and emails one digest to the user's trusted contact.
func (c *Composer) SendDigest(ctx context.Context, user domain.User, digest *domain.WeeklyDigest) error {
	if user.TrustedContactEmail == "" {
		return domain.ErrNoTrustedContact
	}

	html, err := RenderHTML(digest)
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	return c.dispatcher.SendEmail(ctx, domain.EmailMessage{
		To:       user.TrustedContactEmail,
		Subject:  fmt.Sprintf("Weekly Fitness Report for %s", user.DisplayName()),
		HTMLBody: html,
		TextBody: RenderText(digest),
	})
}

// RunAll composes and sends digests for every user with a trusted contact.
// Per-user failures are recorded and never block the remaining users.
func (c *Composer) RunAll(ctx context.Context, today domain.Date) domain.RunSummary {
	started := time.Now()
	defer func() {
		metrics.JobDuration.WithLabelValues("weekly_digest").Observe(time.Since(started).Seconds())
	}()

	users, err := c.db.ListWithTrustedContact()
	if err != nil {
		return domain.RunSummary{Success: false, Error: fmt.Sprintf("list users: %v", err)}
	}

	summary := domain.RunSummary{Success: true}
	for _, user := range users {
		if ctx.Err() != nil {
			break
		}
		summary.Results = append(summary.Results, c.processUser(ctx, user, today))
		summary.Processed++
	}

	metrics.JobUsersProcessed.WithLabelValues("weekly_digest").Add(float64(summary.Processed))
	return summary
}

// RunOne runs the full pipeline for exactly one user — the test-mode
// variant for manual verification.
func (c *Composer) RunOne(ctx context.Context, userID string, today domain.Date) domain.RunSummary {
	user, err := c.db.GetUser(userID)
	if err != nil {
		return domain.RunSummary{Success: false, Error: fmt.Sprintf("load user: %v", err)}
	}
	return domain.RunSummary{
		Success:   true,
		Processed: 1,
		Results:   []domain.UserResult{c.processUser(ctx, *user, today)},
	}
}

func (c *Composer) processUser(ctx context.Context, user domain.User, today domain.Date) domain.UserResult {
	result := domain.UserResult{UserID: user.ID, Recipient: user.TrustedContactEmail}

	digest, err := c.BuildDigest(user, today)
	if err != nil {
		log.Printf("[digest] user %s: %v", user.ID, err)
		result.Error = err.Error()
		return result
	}

	if err := c.SendDigest(ctx, user, digest); err != nil {
		log.Printf("[digest] user %s: send failed: %v", user.ID, err)
		result.Error = err.Error()
		return result
	}

	result.Sent = true
	result.Message = fmt.Sprintf("%d workouts, %d minutes", digest.Stats.TotalWorkouts, digest.Stats.TotalMinutes)
	return result
}
