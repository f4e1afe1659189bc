package handler

import (
	"log/slog"
	"net/http"

	"omnislide/internal/domain/models"
	"omnislide/internal/domain/services"
	"omnislide/internal/httputil"
)

// ProfileHandler handles user profile HTTP requests
type ProfileHandler struct {
	profiles services.ProfileService
	logger   *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles services.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		logger:   logger,
	}
}

// GetProfile returns the authenticated user's profile, creating the
// default free-plan profile on first touch.
// GET /api/users/me/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.GetOrCreate(
		r.Context(),
		userID,
		httputil.GetUserEmail(r),
		httputil.GetUserDisplayName(r),
	)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}

// UpdateProfile applies a merge-patch to the authenticated user's profile
// PATCH /api/users/me/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var patch models.ProfilePatch
	if err := httputil.ParseJSON(w, r, &patch); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profiles.Update(r.Context(), userID, &patch)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}
