package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/service/availability"
	"slotbook/backend/internal/store"
)

type availabilityService interface {
	Create(ctx context.Context, in availability.CreateInput) (domain.Availability, error)
	Get(ctx context.Context, hostID, id uuid.UUID) (domain.Availability, error)
	Update(ctx context.Context, hostID, id uuid.UUID, in availability.UpdateInput) (domain.Availability, error)
	Delete(ctx context.Context, hostID, id uuid.UUID) error
	List(ctx context.Context, hostID uuid.UUID) ([]domain.Availability, error)
}

type AvailabilitiesHandler struct {
	svc availabilityService
	log *slog.Logger
}

func NewAvailabilitiesHandler(svc availabilityService, log *slog.Logger) *AvailabilitiesHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AvailabilitiesHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.availabilities")),
	}
}

type createAvailabilityRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (h *AvailabilitiesHandler) Create(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Create"))

	hostID, ok := currentHostID(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"body": err.Error()})
		return
	}

	window, err := h.svc.Create(c.Request.Context(), availability.CreateInput{
		HostID:     hostID,
		DayOfWeek:  *req.DayOfWeek,
		StartClock: req.StartTime,
		EndClock:   req.EndTime,
	})
	if err != nil {
		h.renderError(c, log, err)
		return
	}

	log.Info("availability created",
		slog.String("availability_id", window.ID.String()),
		slog.Int("day_of_week", window.DayOfWeek),
	)
	respondSuccess(c, http.StatusCreated, "Availability created successfully", availabilityJSON(window))
}

func (h *AvailabilitiesHandler) Show(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Show"))

	hostID, ok := currentHostID(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Availability not found", nil)
		return
	}

	window, err := h.svc.Get(c.Request.Context(), hostID, id)
	if err != nil {
		h.renderError(c, log, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Availability retrieved successfully", availabilityJSON(window))
}

type updateAvailabilityRequest struct {
	DayOfWeek *int    `json:"day_of_week"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

func (h *AvailabilitiesHandler) Update(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Update"))

	hostID, ok := currentHostID(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Availability not found", nil)
		return
	}

	var req updateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"body": err.Error()})
		return
	}

	window, err := h.svc.Update(c.Request.Context(), hostID, id, availability.UpdateInput{
		DayOfWeek:  req.DayOfWeek,
		StartClock: req.StartTime,
		EndClock:   req.EndTime,
	})
	if err != nil {
		h.renderError(c, log, err)
		return
	}

	log.Info("availability updated", slog.String("availability_id", window.ID.String()))
	respondSuccess(c, http.StatusOK, "Availability updated successfully", availabilityJSON(window))
}

func (h *AvailabilitiesHandler) Delete(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Delete"))

	hostID, ok := currentHostID(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Availability not found", nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), hostID, id); err != nil {
		h.renderError(c, log, err)
		return
	}

	log.Info("availability deleted", slog.String("availability_id", id.String()))
	respondSuccess(c, http.StatusOK, "Availability deleted successfully", nil)
}

func (h *AvailabilitiesHandler) List(c *gin.Context) {
	log := h.log.With(slog.String("handler", "List"))

	hostID, ok := currentHostID(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	windows, err := h.svc.List(c.Request.Context(), hostID)
	if err != nil {
		h.renderError(c, log, err)
		return
	}

	out := make([]gin.H, 0, len(windows))
	for i := range windows {
		out = append(out, availabilityJSON(windows[i]))
	}
	respondSuccess(c, http.StatusOK, "Availabilities retrieved successfully", gin.H{"items": out})
}

func (h *AvailabilitiesHandler) renderError(c *gin.Context, log *slog.Logger, err error) {
	var vErr *availability.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"validation": vErr.Error()})
	case errors.Is(err, store.ErrDuplicate):
		respondError(c, http.StatusUnprocessableEntity, "An identical availability window already exists", nil)
	case errors.Is(err, store.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, "You do not have access to this availability", nil)
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, "Availability not found", nil)
	default:
		log.Error("availability operation failed", slog.Any("error", err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

func availabilityJSON(a domain.Availability) gin.H {
	return gin.H{
		"id":          a.ID,
		"host_id":     a.HostID,
		"day_of_week": a.DayOfWeek,
		"start_time":  a.StartClock,
		"end_time":    a.EndClock,
		"created_at":  a.CreatedAt,
		"updated_at":  a.UpdatedAt,
	}
}
