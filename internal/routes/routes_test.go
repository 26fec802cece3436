package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mt-apps/walkzilla-backend/internal/handlers"
	"github.com/mt-apps/walkzilla-backend/internal/logger"
	"github.com/mt-apps/walkzilla-backend/internal/period"
	"github.com/mt-apps/walkzilla-backend/internal/pipeline"
	"github.com/mt-apps/walkzilla-backend/internal/store/storetest"
)

func newTestRouter(adminKey string) *chi.Mux {
	st := storetest.New()
	clock := period.NewClock(time.UTC)
	log := logger.NewNop()
	h := handlers.New(st, nil, pipeline.New(st, nil, clock, log), clock, log)

	r := chi.NewRouter()
	SetupRoutes(r, h, adminKey)
	return r
}

func TestAdminRoutesRequireKey(t *testing.T) {
	r := newTestRouter("secret")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/run/facts", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/run/facts", nil)
	req.Header.Set("X-Admin-Key", "wrong")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/run/facts", nil)
	req.Header.Set("X-Admin-Key", "secret")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutesDisabledWithoutKey(t *testing.T) {
	r := newTestRouter("")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/run/facts", nil)
	req.Header.Set("X-Admin-Key", "anything")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPublicRoutesAreOpen(t *testing.T) {
	r := newTestRouter("secret")

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
