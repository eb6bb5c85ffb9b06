package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/service/availability"
	"slotbook/backend/internal/service/events"
	"slotbook/backend/internal/store"
)

type eventsService interface {
	Create(ctx context.Context, in events.CreateInput) (domain.EventType, error)
	Get(ctx context.Context, hostID, id uuid.UUID) (domain.EventType, error)
	Update(ctx context.Context, hostID, id uuid.UUID, in events.UpdateInput) (domain.EventType, error)
	Delete(ctx context.Context, hostID, id uuid.UUID) error
	List(ctx context.Context, in events.ListInput) (events.ListOutput, error)
}

type slotLister interface {
	ListSlots(ctx context.Context, hostID, eventTypeID uuid.UUID, from, to time.Time) ([]domain.Slot, error)
}

// EventsHandler manages a host's event types. Every route sits behind
// RequireAuth and is scoped to the acting host.
type EventsHandler struct {
	svc   eventsService
	slots slotLister
	log   *slog.Logger
}

func NewEventsHandler(svc eventsService, slots slotLister, log *slog.Logger) *EventsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &EventsHandler{
		svc:   svc,
		slots: slots,
		log:   log.With(slog.String("component", "http.events")),
	}
}

type createEventTypeRequest struct {
	Name           string `json:"name" binding:"required"`
	Slug           string `json:"slug"`
	LocationKind   string `json:"location_kind" binding:"required"`
	LocationValue  string `json:"location_value" binding:"required"`
	DurationMins   int    `json:"duration_mins" binding:"required"`
	MaxAdvanceDays *int   `json:"max_advance_days"`
}

func (h *EventsHandler) Create(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Create"))

	hostID, ok := currentHostID(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createEventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"body": err.Error()})
		return
	}

	eventType, err := h.svc.Create(c.Request.Context(), events.CreateInput{
		HostID:         hostID,
		Name:           req.Name,
		Slug:           req.Slug,
		LocationKind:   req.LocationKind,
		LocationValue:  req.LocationValue,
		DurationMins:   req.DurationMins,
		MaxAdvanceDays: req.MaxAdvanceDays,
	})
	if err != nil {
		h.renderError(c, log, err)
		return
	}

	log.Info("event type created",
		slog.String("event_type_id", eventType.ID.String()),
		slog.String("slug", eventType.Slug),
	)
	respondSuccess(c, http.StatusCreated, "Event created successfully", eventTypeJSON(eventType))
}

func (h *EventsHandler) Show(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Show"))

	hostID, ok := currentHostID(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Event not found", nil)
		return
	}

	eventType, err := h.svc.Get(c.Request.Context(), hostID, id)
	if err != nil {
		h.renderError(c, log, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Event retrieved successfully", eventTypeJSON(eventType))
}

type updateEventTypeRequest struct {
	Name           *string `json:"name"`
	Slug           *string `json:"slug"`
	LocationKind   *string `json:"location_kind"`
	LocationValue  *string `json:"location_value"`
	DurationMins   *int    `json:"duration_mins"`
	MaxAdvanceDays *int    `json:"max_advance_days"`
}

func (h *EventsHandler) Update(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Update"))

	hostID, ok := currentHostID(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Event not found", nil)
		return
	}

	var req updateEventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"body": err.Error()})
		return
	}

	eventType, err := h.svc.Update(c.Request.Context(), hostID, id, events.UpdateInput{
		Name:           req.Name,
		Slug:           req.Slug,
		LocationKind:   req.LocationKind,
		LocationValue:  req.LocationValue,
		DurationMins:   req.DurationMins,
		MaxAdvanceDays: req.MaxAdvanceDays,
	})
	if err != nil {
		h.renderError(c, log, err)
		return
	}

	log.Info("event type updated", slog.String("event_type_id", eventType.ID.String()))
	respondSuccess(c, http.StatusOK, "Event updated successfully", eventTypeJSON(eventType))
}

func (h *EventsHandler) Delete(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Delete"))

	hostID, ok := currentHostID(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Event not found", nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), hostID, id); err != nil {
		h.renderError(c, log, err)
		return
	}

	log.Info("event type deleted", slog.String("event_type_id", id.String()))
	respondSuccess(c, http.StatusOK, "Event deleted successfully", nil)
}

func (h *EventsHandler) List(c *gin.Context) {
	log := h.log.With(slog.String("handler", "List"))

	hostID, ok := currentHostID(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))

	out, err := h.svc.List(c.Request.Context(), events.ListInput{
		HostID:     hostID,
		NameFilter: c.Query("name"),
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		h.renderError(c, log, err)
		return
	}

	items := make([]gin.H, 0, len(out.Items))
	for i := range out.Items {
		items = append(items, eventTypeJSON(out.Items[i]))
	}
	respondSuccess(c, http.StatusOK, "Events retrieved successfully", gin.H{
		"items":    items,
		"total":    out.Total,
		"page":     out.Page,
		"per_page": out.PerPage,
	})
}

// Slots lists the bookable openings for one event type over a window.
func (h *EventsHandler) Slots(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Slots"))

	hostID, ok := currentHostID(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Event not found", nil)
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"from": "must be an RFC 3339 timestamp"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"to": "must be an RFC 3339 timestamp"})
		return
	}

	slots, err := h.slots.ListSlots(c.Request.Context(), hostID, id, from, to)
	if err != nil {
		var vErr *availability.ValidationError
		if errors.As(err, &vErr) {
			respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"validation": vErr.Error()})
			return
		}
		h.renderError(c, log, err)
		return
	}

	out := make([]gin.H, 0, len(slots))
	for _, slot := range slots {
		out = append(out, gin.H{
			"start_time": slot.StartTime,
			"end_time":   slot.EndTime,
		})
	}
	respondSuccess(c, http.StatusOK, "Slots retrieved successfully", gin.H{"slots": out})
}

func (h *EventsHandler) renderError(c *gin.Context, log *slog.Logger, err error) {
	var vErr *events.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"validation": vErr.Error()})
	case errors.Is(err, store.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, "You do not have access to this event", nil)
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, "Event not found", nil)
	case errors.Is(err, store.ErrDuplicate):
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"slug": "slug is already in use"})
	case errors.Is(err, store.ErrSlugExhausted):
		respondError(c, http.StatusUnprocessableEntity, "Could not derive a unique slug, provide one explicitly", nil)
	default:
		log.Error("event type operation failed", slog.Any("error", err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

func eventTypeJSON(e domain.EventType) gin.H {
	return gin.H{
		"id":               e.ID,
		"host_id":          e.HostID,
		"name":             e.Name,
		"slug":             e.Slug,
		"location_kind":    e.LocationKind,
		"location_value":   e.LocationValue,
		"duration_mins":    e.DurationMins,
		"max_advance_days": e.MaxAdvanceDays,
		"created_at":       e.CreatedAt,
		"updated_at":       e.UpdatedAt,
	}
}
