package store

import (
	"context"

	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
)

// CreateEventTypeParams carries a new event type. Slug is optional; when
// empty the store derives one from Name and suffixes it until unique
// within the host.
type CreateEventTypeParams struct {
	HostID         uuid.UUID
	Name           string
	Slug           string
	LocationKind   string
	LocationValue  string
	DurationMins   int
	MaxAdvanceDays *int
}

// UpdateEventTypeParams carries a partial update. Renaming without an
// explicit Slug re-derives the slug from the new name.
type UpdateEventTypeParams struct {
	Name           *string
	Slug           *string
	LocationKind   *string
	LocationValue  *string
	DurationMins   *int
	MaxAdvanceDays *int
}

type ListEventTypesParams struct {
	HostID     uuid.UUID
	NameFilter string
	Limit      int
	Offset     int
}

type EventTypeRepository interface {
	Create(ctx context.Context, params CreateEventTypeParams) (domain.EventType, error)
	Get(ctx context.Context, id uuid.UUID) (domain.EventType, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateEventTypeParams) (domain.EventType, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ListEventTypesParams) ([]domain.EventType, int, error)
}
