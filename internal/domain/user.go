package domain

// User is an app user profile as the progress engine sees it.
// Authentication and session state are handled elsewhere.
type User struct {
	ID                  string `json:"id"`
	FullName            string `json:"full_name"`
	Email               string `json:"email"`
	PushToken           string `json:"push_token,omitempty"`
	Subscribed          bool   `json:"is_subscribed"`
	TrustedContactEmail string `json:"trusted_contact_email,omitempty"`

	// Streak counters — the only persisted derived state.
	// Single-writer: only the streak tracker updates these.
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// DisplayName returns the name used in notifications and digests:
// full name if set, otherwise the local part of the email address.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	for i := 0; i < len(u.Email); i++ {
		if u.Email[i] == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}

// StreakState holds the two persisted streak counters plus the date of the
// last counted workout day.
type StreakState struct {
	Current  int  `json:"current_streak"`
	Longest  int  `json:"longest_streak"`
	LastDate Date `json:"last_date"`
}

// Advance applies one workout on day to the streak. hadYesterday reports
// whether a log exists for day-1. The transition is only valid for the
// first log of a given day; callers guard re-entrancy (same-day logs are
// a no-op, enforced here via LastDate).
func (s StreakState) Advance(day Date, hadYesterday bool) StreakState {
	if !s.LastDate.IsZero() && s.LastDate == day {
		return s // Already counted this day
	}
	if hadYesterday {
		s.Current++
	} else {
		s.Current = 1
	}
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastDate = day
	return s
}
