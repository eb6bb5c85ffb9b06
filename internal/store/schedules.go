package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
)

type CreateScheduleParams struct {
	HostID      uuid.UUID
	EventTypeID uuid.UUID
	Range       domain.TimeRange
	ClientName  string
	ClientEmail string
}

// UpdateScheduleParams carries a partial update. When only one of
// StartTime/EndTime is set the other half of the candidate range comes
// from the stored row, resolved inside the host lock.
type UpdateScheduleParams struct {
	StartTime   *time.Time
	EndTime     *time.Time
	ClientName  *string
	ClientEmail *string
}

type ScheduleRepository interface {
	Create(ctx context.Context, params CreateScheduleParams) (domain.Schedule, error)
	Update(ctx context.Context, serial string, params UpdateScheduleParams) (domain.Schedule, error)
	Cancel(ctx context.Context, serial string) (domain.Schedule, error)
	GetBySerial(ctx context.Context, serial string) (domain.Schedule, error)
	ListConfirmed(ctx context.Context, hostID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Schedule, error)
}
