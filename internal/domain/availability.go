package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Availability is a weekly recurring window in which a host accepts
// bookings. DayOfWeek follows time.Weekday (0 = Sunday). StartClock and
// EndClock are wall-clock times in "HH:MM" form.
type Availability struct {
	bun.BaseModel `bun:"table:availabilities"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	HostID     uuid.UUID `bun:"host_id,notnull,type:uuid"`
	DayOfWeek  int       `bun:"day_of_week,notnull"`
	StartClock string    `bun:"start_time,notnull"`
	EndClock   string    `bun:"end_time,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
	UpdatedAt  time.Time `bun:"updated_at,notnull"`
}

func (a *Availability) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}
