package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// runnableJobs maps the admin trigger names onto the scheduled drivers.
func (h *Handler) runnableJobs() map[string]func(context.Context, time.Time) error {
	return map[string]func(context.Context, time.Time) error{
		"daily":         h.Pipeline.DailyRewards,
		"weekly":        h.Pipeline.WeeklyRewards,
		"facts":         h.Pipeline.DailyFacts,
		"inactivity":    h.Pipeline.InactivityReminders,
		"goal-reminder": h.Pipeline.GoalReminder,
	}
}

type runJobResponse struct {
	Success bool   `json:"success"`
	Job     string `json:"job"`
}

// RunJob invokes one scheduled driver immediately. Safe to call freely:
// the drivers' own idempotency guards decide whether anything happens.
func (h *Handler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "job")
	job, ok := h.runnableJobs()[name]
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown job: "+name)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	if err := job(ctx, time.Now()); err != nil {
		h.Log.Error("manual job run failed", "job", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Job failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runJobResponse{Success: true, Job: name})
}

// InitUserRequest seeds leaderboard fields for a new user.
type InitUserRequest struct {
	UserID string `json:"user_id"`
}

// InitUser bootstraps {daily_steps:{}, weekly_steps:0, coins:0} for a
// freshly signed-up user without touching an existing document.
func (h *Handler) InitUser(w http.ResponseWriter, r *http.Request) {
	var req InitUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := h.Store.SeedUser(r.Context(), req.UserID); err != nil {
		h.Log.Error("user init failed", "user", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to initialize user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user_id": req.UserID})
}

// MigrateRemoveDailyStepGoal drops the retired per-user dailyStepGoal
// field; goals live in monthlyGoals now.
func (h *Handler) MigrateRemoveDailyStepGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	n, err := h.Store.RemoveFieldAll(ctx, "dailyStepGoal")
	if err != nil {
		h.Log.Error("migration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Migration failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "updated": n})
}
