package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EventType is a bookable meeting template owned by a host. Slug is
// unique within the host and is what public booking pages link to.
type EventType struct {
	bun.BaseModel `bun:"table:event_types"`

	ID             uuid.UUID `bun:"id,pk,type:uuid"`
	HostID         uuid.UUID `bun:"host_id,notnull,type:uuid"`
	Name           string    `bun:"name,notnull"`
	Slug           string    `bun:"slug,notnull"`
	LocationKind   string    `bun:"location_kind,notnull"`
	LocationValue  string    `bun:"location_value,notnull"`
	DurationMins   int       `bun:"duration_mins,notnull"`
	MaxAdvanceDays *int      `bun:"max_advance_days"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
	UpdatedAt      time.Time `bun:"updated_at,notnull"`
}

func (e *EventType) Duration() time.Duration {
	return time.Duration(e.DurationMins) * time.Minute
}

func (e *EventType) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if e.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			e.ID = id
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		if e.UpdatedAt.IsZero() {
			e.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		e.UpdatedAt = now
	}
	return nil
}
