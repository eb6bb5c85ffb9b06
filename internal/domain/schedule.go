package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ScheduleStatus string

const (
	ScheduleStatusConfirmed ScheduleStatus = "confirmed"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

// Schedule is a concrete booking of a host's time against an event type.
// Confirmed schedules of one host never overlap; cancelled schedules keep
// their row for the client's records but leave the conflict universe.
type Schedule struct {
	bun.BaseModel `bun:"table:schedules"`

	ID          uuid.UUID      `bun:"id,pk,type:uuid"`
	Serial      string         `bun:"serial,notnull"`
	HostID      uuid.UUID      `bun:"host_id,notnull,type:uuid"`
	EventTypeID uuid.UUID      `bun:"event_type_id,notnull,type:uuid"`
	StartTime   time.Time      `bun:"start_time,notnull"`
	EndTime     time.Time      `bun:"end_time,notnull"`
	ClientName  string         `bun:"client_name,notnull"`
	ClientEmail string         `bun:"client_email,notnull"`
	Status      ScheduleStatus `bun:"status,notnull"`
	CreatedAt   time.Time      `bun:"created_at,notnull"`
	UpdatedAt   time.Time      `bun:"updated_at,notnull"`
}

func (s *Schedule) Range() TimeRange {
	return TimeRange{Start: s.StartTime.UTC(), End: s.EndTime.UTC()}
}

func (s *Schedule) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if s.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			s.ID = id
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		s.UpdatedAt = now
	}
	return nil
}
