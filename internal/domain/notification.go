package domain

// Action codes consumed by the client UI on notification tap. Opaque to the
// engine — attached per notification type, never interpreted here.
const (
	ActionOpenWorkouts = "open_workouts"
	ActionOpenProgress = "open_progress"
)

// InactivityTier classifies how long a user has been inactive and drives
// notification tone and content.
type InactivityTier string

const (
	TierGentle     InactivityTier = "gentle"      // 2 days — light nudge
	TierStreakRisk InactivityTier = "streak_risk" // 3–6 days — streak about to break
	TierWeekPlus   InactivityTier = "week_plus"   // ≥7 days — we miss you
)

// DaysInactiveNever is the sentinel for users who have never logged a
// workout. Large enough to always land in the week-plus tier.
const DaysInactiveNever = 999

// PushMessage is one push notification payload.
type PushMessage struct {
	Token string         `json:"to"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
}

// EmailMessage is one outbound email with equivalent HTML and plain-text
// bodies. HTML is presentation-only; both carry the same facts.
type EmailMessage struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
	TextBody string `json:"text_body"`
}

// SendOutcome records the result of one recipient's send.
type SendOutcome struct {
	UserID    string `json:"user_id,omitempty"`
	Recipient string `json:"recipient"` // push token or email address
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

// BatchResult aggregates per-recipient outcomes for one dispatch batch.
type BatchResult struct {
	SuccessCount int           `json:"success_count"`
	FailureCount int           `json:"failure_count"`
	Outcomes     []SendOutcome `json:"outcomes"`
}

// Add appends an outcome and bumps the matching counter.
func (b *BatchResult) Add(o SendOutcome) {
	b.Outcomes = append(b.Outcomes, o)
	if o.Sent {
		b.SuccessCount++
	} else {
		b.FailureCount++
	}
}

// UserResult is one user's entry in a scheduled-job run summary.
type UserResult struct {
	UserID       string         `json:"user_id"`
	Recipient    string         `json:"recipient,omitempty"`
	DaysInactive int            `json:"days_inactive,omitempty"`
	Tier         InactivityTier `json:"tier,omitempty"`
	Sent         bool           `json:"sent"`
	Message      string         `json:"message,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// RunSummary is the auditable per-run result of a scheduled job.
// Success is false only when no partial progress was possible at all
// (e.g. the store itself was unreachable).
type RunSummary struct {
	Success   bool         `json:"success"`
	Processed int          `json:"processed"`
	Results   []UserResult `json:"results"`
	Error     string       `json:"error,omitempty"`
}
