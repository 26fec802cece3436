package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mt-apps/walkzilla-backend/internal/leaderboard"
	"github.com/mt-apps/walkzilla-backend/internal/models"
	"github.com/mt-apps/walkzilla-backend/internal/services"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// LeaderboardResponse is the payload of GET /api/leaderboard.
type LeaderboardResponse struct {
	Success     bool                      `json:"success"`
	Type        string                    `json:"type"`
	Date        string                    `json:"date"`
	Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
}

// GetLeaderboard returns today's daily or the current weekly ranking.
// Reads go through the Redis cache; rankings shift with every step sync,
// so the TTL is short.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = models.PeriodDaily
	}
	if kind != models.PeriodDaily && kind != models.PeriodWeekly {
		writeError(w, http.StatusBadRequest, "type must be daily or weekly")
		return
	}

	limit := int64(defaultLeaderboardLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if n > maxLeaderboardLimit {
			n = maxLeaderboardLimit
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	today := h.Clock.DayKey(time.Now())
	cacheKey := fmt.Sprintf("leaderboard:%s:%s:%d", kind, today, limit)

	var cached LeaderboardResponse
	if hit, _ := h.Cache.Get(ctx, cacheKey, &cached); hit {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	var (
		users []models.User
		sel   leaderboard.Selector
		err   error
	)
	if kind == models.PeriodDaily {
		users, err = h.Store.TopDaily(ctx, today, limit)
		sel = leaderboard.DailySteps(today)
	} else {
		users, err = h.Store.TopWeekly(ctx, limit)
		sel = leaderboard.WeeklySteps
	}
	if err != nil {
		h.Log.Error("leaderboard query failed", "type", kind, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load leaderboard")
		return
	}

	resp := LeaderboardResponse{
		Success:     true,
		Type:        kind,
		Date:        today,
		Leaderboard: leaderboard.Build(users, sel, nil),
	}
	if err := h.Cache.Set(ctx, cacheKey, resp, services.LeaderboardTTL); err != nil {
		h.Log.Warn("leaderboard cache write failed", "error", err)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HistoryResponse is the payload of GET /api/leaderboard/history.
type HistoryResponse struct {
	Success bool                   `json:"success"`
	Type    string                 `json:"type"`
	History []models.HistoryRecord `json:"history"`
}

// GetLeaderboardHistory lists past reward distributions, newest first.
func (h *Handler) GetLeaderboardHistory(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = models.PeriodDaily
	}
	if kind != models.PeriodDaily && kind != models.PeriodWeekly {
		writeError(w, http.StatusBadRequest, "type must be daily or weekly")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	recs, err := h.Store.History(ctx, kind, 20)
	if err != nil {
		h.Log.Error("history query failed", "type", kind, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}
	if recs == nil {
		recs = []models.HistoryRecord{}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Success: true, Type: kind, History: recs})
}
