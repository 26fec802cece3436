package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mt-apps/walkzilla-backend/internal/handlers"
	"github.com/mt-apps/walkzilla-backend/internal/middleware"
)

func SetupRoutes(r *chi.Mux, h *handlers.Handler, adminKey string) {
	// Leaderboard reads
	r.Get("/api/leaderboard", h.GetLeaderboard)
	r.Get("/api/leaderboard/history", h.GetLeaderboardHistory)

	// Client bridge: step deltas and duo challenge invites
	r.Post("/api/users/{id}/steps", h.AddSteps)
	r.Post("/api/invites", h.CreateInvite)

	// Admin: manual driver runs and maintenance
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminKey(adminKey))
		r.Post("/api/admin/run/{job}", h.RunJob)
		r.Post("/api/admin/users/init", h.InitUser)
		r.Post("/api/admin/migrate/remove-daily-step-goal", h.MigrateRemoveDailyStepGoal)
	})
}
