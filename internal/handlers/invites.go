package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mt-apps/walkzilla-backend/internal/models"
)

// CreateInviteRequest creates one duo challenge invite.
type CreateInviteRequest struct {
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
}

// CreateInviteResponse returns the stored invite.
type CreateInviteResponse struct {
	Success bool                      `json:"success"`
	Invite  models.DuoChallengeInvite `json:"invite"`
}

// CreateInvite persists the invite document and fires the single-shot
// invite notification to the invited user.
func (h *Handler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	var req CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FromUserID == "" || req.ToUserID == "" {
		writeError(w, http.StatusBadRequest, "from_user_id and to_user_id are required")
		return
	}
	if req.FromUserID == req.ToUserID {
		writeError(w, http.StatusBadRequest, "Cannot invite yourself")
		return
	}

	inv := models.DuoChallengeInvite{
		ID:         uuid.NewString(),
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		CreatedAt:  time.Now(),
	}
	if err := h.Store.CreateInvite(r.Context(), inv); err != nil {
		h.Log.Error("invite create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create invite")
		return
	}

	if err := h.Pipeline.InviteCreated(r.Context(), inv); err != nil {
		// The invite exists regardless; delivery is best effort.
		h.Log.Error("invite notification failed", "invite", inv.ID, "error", err)
	}

	writeJSON(w, http.StatusCreated, CreateInviteResponse{Success: true, Invite: inv})
}
