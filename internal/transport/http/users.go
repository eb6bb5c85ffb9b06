package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/service/users"
	"slotbook/backend/internal/store"
)

type usersService interface {
	Profile(ctx context.Context, hostID uuid.UUID) (domain.User, error)
	Preference(ctx context.Context, hostID uuid.UUID) (domain.UserPreference, error)
	SetPreference(ctx context.Context, hostID uuid.UUID, timezone string) (domain.UserPreference, error)
}

type UsersHandler struct {
	svc usersService
	log *slog.Logger
}

func NewUsersHandler(svc usersService, log *slog.Logger) *UsersHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UsersHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.users")),
	}
}

func (h *UsersHandler) Profile(c *gin.Context) {
	hostID, ok := currentHostID(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.svc.Profile(c.Request.Context(), hostID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "User not found", nil)
		return
	}
	if err != nil {
		h.log.Error("profile lookup failed", slog.Any("error", err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respondSuccess(c, http.StatusOK, "Profile retrieved successfully", gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}

func (h *UsersHandler) Preference(c *gin.Context) {
	hostID, ok := currentHostID(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	pref, err := h.svc.Preference(c.Request.Context(), hostID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Preference not set", nil)
		return
	}
	if err != nil {
		h.log.Error("preference lookup failed", slog.Any("error", err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respondSuccess(c, http.StatusOK, "Preference retrieved successfully", preferenceJSON(pref))
}

type setPreferenceRequest struct {
	Timezone string `json:"timezone" binding:"required"`
}

func (h *UsersHandler) SetPreference(c *gin.Context) {
	hostID, ok := currentHostID(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req setPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"body": err.Error()})
		return
	}

	pref, err := h.svc.SetPreference(c.Request.Context(), hostID, req.Timezone)
	if err != nil {
		var vErr *users.ValidationError
		if errors.As(err, &vErr) {
			respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"validation": vErr.Error()})
			return
		}
		h.log.Error("preference update failed", slog.Any("error", err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respondSuccess(c, http.StatusOK, "Preference updated successfully", preferenceJSON(pref))
}

func preferenceJSON(p domain.UserPreference) gin.H {
	return gin.H{
		"host_id":    p.HostID,
		"timezone":   p.Timezone,
		"updated_at": p.UpdatedAt,
	}
}
