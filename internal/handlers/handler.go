package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mt-apps/walkzilla-backend/internal/logger"
	"github.com/mt-apps/walkzilla-backend/internal/period"
	"github.com/mt-apps/walkzilla-backend/internal/pipeline"
	"github.com/mt-apps/walkzilla-backend/internal/services"
	"github.com/mt-apps/walkzilla-backend/internal/store"
)

// Handler carries the HTTP surface's dependencies. One instance is built
// in main and shared by every route.
type Handler struct {
	Store    store.Store
	Cache    *services.Cache
	Pipeline *pipeline.Pipeline
	Clock    period.Clock
	Log      *logger.Logger
}

func New(st store.Store, cache *services.Cache, p *pipeline.Pipeline, clock period.Clock, log *logger.Logger) *Handler {
	return &Handler{Store: st, Cache: cache, Pipeline: p, Clock: clock, Log: log}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Message: msg})
}
