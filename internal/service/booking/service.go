package booking

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/store"
)

const (
	maxClientNameLen  = 255
	maxClientEmailLen = 254
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Service is the booking core: it owns schedule creation, rescheduling,
// cancellation and lookup. Conflict arbitration happens in the schedule
// store under the host's lock; this layer enforces the wire-level rules
// before the core is invoked.
type Service struct {
	schedules store.ScheduleRepository
	events    store.EventTypeRepository
}

func NewService(schedules store.ScheduleRepository, events store.EventTypeRepository) *Service {
	return &Service{schedules: schedules, events: events}
}

type CreateInput struct {
	EventTypeID uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	ClientName  string
	ClientEmail string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Schedule, error) {
	if in.EventTypeID == uuid.Nil {
		return domain.Schedule{}, validationError("event_type_id is required")
	}
	name, err := validClientName(in.ClientName)
	if err != nil {
		return domain.Schedule{}, err
	}
	email, err := validClientEmail(in.ClientEmail)
	if err != nil {
		return domain.Schedule{}, err
	}
	candidate, err := domain.NewTimeRange(in.StartTime, in.EndTime)
	if err != nil {
		return domain.Schedule{}, validationError("end_time must be after start_time")
	}

	// The event type resolves the host the booking lands on.
	eventType, err := s.events.Get(ctx, in.EventTypeID)
	if err != nil {
		return domain.Schedule{}, err
	}

	return s.schedules.Create(ctx, store.CreateScheduleParams{
		HostID:      eventType.HostID,
		EventTypeID: eventType.ID,
		Range:       candidate,
		ClientName:  name,
		ClientEmail: email,
	})
}

type UpdateInput struct {
	StartTime   *time.Time
	EndTime     *time.Time
	ClientName  *string
	ClientEmail *string
}

func (s *Service) Update(ctx context.Context, serial string, in UpdateInput) (domain.Schedule, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return domain.Schedule{}, validationError("serial is required")
	}

	params := store.UpdateScheduleParams{
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}
	if in.StartTime != nil && in.EndTime != nil && !in.EndTime.After(*in.StartTime) {
		return domain.Schedule{}, validationError("end_time must be after start_time")
	}
	if in.ClientName != nil {
		name, err := validClientName(*in.ClientName)
		if err != nil {
			return domain.Schedule{}, err
		}
		params.ClientName = &name
	}
	if in.ClientEmail != nil {
		email, err := validClientEmail(*in.ClientEmail)
		if err != nil {
			return domain.Schedule{}, err
		}
		params.ClientEmail = &email
	}

	return s.schedules.Update(ctx, serial, params)
}

func (s *Service) Cancel(ctx context.Context, serial string) (domain.Schedule, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return domain.Schedule{}, validationError("serial is required")
	}
	return s.schedules.Cancel(ctx, serial)
}

func (s *Service) Lookup(ctx context.Context, serial string) (domain.Schedule, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return domain.Schedule{}, validationError("serial is required")
	}
	return s.schedules.GetBySerial(ctx, serial)
}

func validClientName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationError("client_name is required")
	}
	if len(name) > maxClientNameLen {
		return "", validationError("client_name too long")
	}
	return name, nil
}

func validClientEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", validationError("client_email is required")
	}
	if len(email) > maxClientEmailLen {
		return "", validationError("client_email too long")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", validationError("client_email must be a valid email address")
	}
	return email, nil
}
