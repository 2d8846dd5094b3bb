package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phildaponte/senior-strength/internal/app/notify"
	"github.com/phildaponte/senior-strength/internal/app/progress"
	"github.com/phildaponte/senior-strength/internal/domain"
	"github.com/phildaponte/senior-strength/internal/infra/metrics"
)

// --- POST /api/logs ---

type recordLogRequest struct {
	UserID          string `json:"user_id"`
	WorkoutID       string `json:"workout_id"`
	Date            string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	DurationSeconds int    `json:"duration_seconds"`
	JournalText     string `json:"journal_text,omitempty"`
}

func (s *Server) handleRecordLog(w http.ResponseWriter, r *http.Request) {
	var req recordLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.DurationSeconds <= 0 {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidDuration.Error())
		return
	}

	today := domain.DateOf(time.Now())
	day := today
	if req.Date != "" {
		parsed, err := domain.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if parsed.After(today) {
			writeError(w, http.StatusBadRequest, domain.ErrInvalidDate.Error())
			return
		}
		day = parsed
	}

	entry := domain.WorkoutLog{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		WorkoutID:       req.WorkoutID,
		Date:            day,
		DurationSeconds: req.DurationSeconds,
		JournalText:     req.JournalText,
	}
	if req.JournalText != "" {
		entry.Sentiment = s.analyzer.Analyze(r.Context(), req.JournalText)
	}

	streak, err := s.progress.Streaks().Record(entry)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLogExists):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	metrics.LogsRecorded.Inc()

	// Cache refresh is display-only; a failure must not fail the write.
	if err := s.progress.RefreshBadgeCache(req.UserID, today); err != nil {
		log.Printf("[api] badge cache refresh for %s: %v", req.UserID, err)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"log":    entry,
		"streak": streak,
	})
}

// --- GET /api/users/{id}/progress ---

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	summary, err := s.progress.Summarize(userID, domain.DateOf(time.Now()))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// --- GET /api/users/{id}/calendar?month=YYYY-MM ---

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	today := domain.DateOf(time.Now())

	target := today
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := progress.ParseMonth(m)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		target = parsed
	}

	days, err := s.progress.Calendar(userID, target, today)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"month":   target.Time().Format("2006-01"),
		"headers": progress.DayHeaders(),
		"days":    days,
	})
}

// --- GET /api/users/{id}/journal?limit=N ---

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.db.JournalEntries(userID, domain.Date{}, domain.Date{}, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

// --- POST /api/users/{id}/streak/reconcile ---

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	state, err := s.progress.Streaks().Reconcile(userID, domain.DateOf(time.Now()))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// --- POST /api/jobs/weekly-digest[?user=id] ---

func (s *Server) handleWeeklyDigest(w http.ResponseWriter, r *http.Request) {
	today := domain.DateOf(time.Now())

	var summary domain.RunSummary
	if userID := r.URL.Query().Get("user"); userID != "" {
		summary = s.digests.RunOne(r.Context(), userID, today)
	} else {
		summary = s.digests.RunAll(r.Context(), today)
	}

	status := http.StatusOK
	if !summary.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, summary)
}

// --- POST /api/jobs/inactivity-scan ---

func (s *Server) handleInactivityScan(w http.ResponseWriter, r *http.Request) {
	summary := s.detector.Run(r.Context(), domain.DateOf(time.Now()))

	status := http.StatusOK
	if !summary.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, summary)
}

// --- POST /api/notifications/push ---

type dispatchPushRequest struct {
	Items []struct {
		UserID string         `json:"user_id"`
		Title  string         `json:"title"`
		Body   string         `json:"body"`
		Data   map[string]any `json:"data,omitempty"`
	} `json:"items"`
}

func (s *Server) handleDispatchPush(w http.ResponseWriter, r *http.Request) {
	var req dispatchPushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, domain.ErrEmptyBatch.Error())
		return
	}

	// Resolve tokens up front so a bad recipient is a recorded failure,
	// not a rejected batch.
	var result domain.BatchResult
	var items []notify.PushItem
	for _, item := range req.Items {
		user, err := s.db.GetUser(item.UserID)
		if err != nil {
			result.Add(domain.SendOutcome{UserID: item.UserID, Sent: false, Error: err.Error()})
			continue
		}
		if user.PushToken == "" {
			result.Add(domain.SendOutcome{UserID: item.UserID, Sent: false, Error: domain.ErrNoPushToken.Error()})
			continue
		}
		items = append(items, notify.PushItem{
			UserID: item.UserID,
			Message: domain.PushMessage{
				Token: user.PushToken,
				Title: item.Title,
				Body:  item.Body,
				Data:  item.Data,
			},
		})
	}

	sent := s.dispatcher.DispatchPush(r.Context(), items)
	for _, o := range sent.Outcomes {
		result.Add(o)
	}
	writeJSON(w, http.StatusOK, result)
}
