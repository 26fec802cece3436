package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mt-apps/walkzilla-backend/internal/store"
)

// AddStepsRequest is the client bridge's daily step delta report.
type AddStepsRequest struct {
	Steps int64 `json:"steps"`
}

// AddStepsResponse echoes the updated counters.
type AddStepsResponse struct {
	Success    bool   `json:"success"`
	Date       string `json:"date"`
	TodaySteps int64  `json:"today_steps"`
}

// AddSteps applies a step delta to today's counter and the weekly total,
// then feeds the pre/post values to the goal-completion trigger so a
// crossing of the daily goal fires exactly once.
func (h *Handler) AddSteps(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User id is required")
		return
	}

	var req AddStepsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Steps <= 0 {
		writeError(w, http.StatusBadRequest, "steps must be a positive integer")
		return
	}

	now := time.Now()
	dayKey := h.Clock.DayKey(now)

	before, after, err := h.Store.AddSteps(r.Context(), userID, dayKey, req.Steps)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("add steps failed", "user", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to record steps")
		return
	}

	if err := h.Pipeline.GoalCompleted(r.Context(), userID, before, after, now); err != nil {
		// The steps are committed; the trigger retries on the next report.
		h.Log.Error("goal completion check failed", "user", userID, "error", err)
	}

	writeJSON(w, http.StatusOK, AddStepsResponse{Success: true, Date: dayKey, TodaySteps: after})
}
