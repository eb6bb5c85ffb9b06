package store

import (
	"context"

	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
)

type CreateAvailabilityParams struct {
	HostID     uuid.UUID
	DayOfWeek  int
	StartClock string
	EndClock   string
}

type UpdateAvailabilityParams struct {
	DayOfWeek  *int
	StartClock *string
	EndClock   *string
}

type AvailabilityRepository interface {
	Create(ctx context.Context, params CreateAvailabilityParams) (domain.Availability, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Availability, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateAvailabilityParams) (domain.Availability, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Availability, error)
}
