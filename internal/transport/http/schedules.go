package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/service/booking"
	"slotbook/backend/internal/store"
)

type bookingService interface {
	Create(ctx context.Context, in booking.CreateInput) (domain.Schedule, error)
	Update(ctx context.Context, serial string, in booking.UpdateInput) (domain.Schedule, error)
	Cancel(ctx context.Context, serial string) (domain.Schedule, error)
	Lookup(ctx context.Context, serial string) (domain.Schedule, error)
}

// SchedulesHandler exposes the public booking surface. No authentication:
// clients book with the event type id and manage their booking with the
// serial the create response hands back.
type SchedulesHandler struct {
	svc bookingService
	log *slog.Logger
}

func NewSchedulesHandler(svc bookingService, log *slog.Logger) *SchedulesHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SchedulesHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.schedules")),
	}
}

type createScheduleRequest struct {
	EventTypeID string    `json:"event_type_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	ClientName  string    `json:"client_name" binding:"required"`
	ClientEmail string    `json:"client_email" binding:"required"`
}

func (h *SchedulesHandler) Create(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Create"))

	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"body": err.Error()})
		return
	}
	eventTypeID, err := uuid.Parse(req.EventTypeID)
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"event_type_id": "must be a valid UUID"})
		return
	}

	schedule, err := h.svc.Create(c.Request.Context(), booking.CreateInput{
		EventTypeID: eventTypeID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
	})
	if err != nil {
		h.renderError(c, log, err)
		return
	}

	log.Info("schedule created",
		slog.String("serial", schedule.Serial),
		slog.String("host_id", schedule.HostID.String()),
		slog.Time("start_time", schedule.StartTime),
	)
	respondSuccess(c, http.StatusCreated, "Schedule created successfully", scheduleJSON(schedule))
}

func (h *SchedulesHandler) Show(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Show"))

	schedule, err := h.svc.Lookup(c.Request.Context(), c.Param("serial"))
	if err != nil {
		h.renderError(c, log, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Schedule retrieved successfully", scheduleJSON(schedule))
}

type updateScheduleRequest struct {
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	ClientName  *string    `json:"client_name"`
	ClientEmail *string    `json:"client_email"`
}

func (h *SchedulesHandler) Update(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Update"))

	var req updateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"body": err.Error()})
		return
	}

	schedule, err := h.svc.Update(c.Request.Context(), c.Param("serial"), booking.UpdateInput{
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
	})
	if err != nil {
		h.renderError(c, log, err)
		return
	}

	log.Info("schedule updated", slog.String("serial", schedule.Serial))
	respondSuccess(c, http.StatusOK, "Schedule updated successfully", scheduleJSON(schedule))
}

func (h *SchedulesHandler) Cancel(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Cancel"))

	schedule, err := h.svc.Cancel(c.Request.Context(), c.Param("serial"))
	if err != nil {
		h.renderError(c, log, err)
		return
	}

	log.Info("schedule cancelled", slog.String("serial", schedule.Serial))
	respondSuccess(c, http.StatusOK, "Schedule cancelled successfully", scheduleJSON(schedule))
}

func (h *SchedulesHandler) renderError(c *gin.Context, log *slog.Logger, err error) {
	var vErr *booking.ValidationError
	var cErr *store.ConflictError
	switch {
	case errors.As(err, &vErr):
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"validation": vErr.Error()})
	case errors.Is(err, domain.ErrInvalidRange):
		// A partial reschedule can only be validated against the stored
		// half of the range inside the host lock, so the store reports
		// the inversion.
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"validation": err.Error()})
	case errors.As(err, &cErr):
		log.Info("booking conflict", slog.String("conflicting_schedule_id", cErr.ConflictingScheduleID.String()))
		respondError(c, http.StatusUnprocessableEntity, "Time slot is already booked", map[string]string{
			"time_conflict": "The selected time slot conflicts with an existing schedule",
		})
	case errors.Is(err, store.ErrAlreadyCancelled):
		respondError(c, http.StatusUnprocessableEntity, "Schedule is already cancelled", nil)
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, "Schedule not found", nil)
	case errors.Is(err, store.ErrContention):
		respondError(c, http.StatusServiceUnavailable, "Temporarily unable to process the booking, please retry", nil)
	case errors.Is(err, store.ErrSerialExhausted):
		log.Error("serial allocation exhausted")
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	default:
		log.Error("schedule operation failed", slog.Any("error", err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

func scheduleJSON(s domain.Schedule) gin.H {
	return gin.H{
		"id":            s.ID,
		"serial":        s.Serial,
		"host_id":       s.HostID,
		"event_type_id": s.EventTypeID,
		"start_time":    s.StartTime,
		"end_time":      s.EndTime,
		"client_name":   s.ClientName,
		"client_email":  s.ClientEmail,
		"status":        s.Status,
		"created_at":    s.CreatedAt,
		"updated_at":    s.UpdatedAt,
	}
}
