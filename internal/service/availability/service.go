package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/store"
)

// Hosts rarely want tooling to enumerate slots further out than this;
// max_advance_days can only tighten the window.
const maxSlotLookahead = 90 * 24 * time.Hour

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Service manages a host's weekly availability windows and derives
// concrete bookable slots from them.
type Service struct {
	repo      store.AvailabilityRepository
	events    store.EventTypeRepository
	schedules store.ScheduleRepository
	now       func() time.Time
}

func NewService(repo store.AvailabilityRepository, events store.EventTypeRepository, schedules store.ScheduleRepository) *Service {
	return &Service{
		repo:      repo,
		events:    events,
		schedules: schedules,
		now:       time.Now,
	}
}

type CreateInput struct {
	HostID     uuid.UUID
	DayOfWeek  int
	StartClock string
	EndClock   string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Availability, error) {
	if in.HostID == uuid.Nil {
		return domain.Availability{}, validationError("host_id is required")
	}
	if err := validateWindow(in.DayOfWeek, in.StartClock, in.EndClock); err != nil {
		return domain.Availability{}, err
	}
	return s.repo.Create(ctx, store.CreateAvailabilityParams{
		HostID:     in.HostID,
		DayOfWeek:  in.DayOfWeek,
		StartClock: in.StartClock,
		EndClock:   in.EndClock,
	})
}

func (s *Service) Get(ctx context.Context, hostID, id uuid.UUID) (domain.Availability, error) {
	window, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Availability{}, err
	}
	if window.HostID != hostID {
		return domain.Availability{}, store.ErrPermissionDenied
	}
	return window, nil
}

type UpdateInput struct {
	DayOfWeek  *int
	StartClock *string
	EndClock   *string
}

func (s *Service) Update(ctx context.Context, hostID, id uuid.UUID, in UpdateInput) (domain.Availability, error) {
	current, err := s.Get(ctx, hostID, id)
	if err != nil {
		return domain.Availability{}, err
	}

	day := current.DayOfWeek
	start := current.StartClock
	end := current.EndClock
	if in.DayOfWeek != nil {
		day = *in.DayOfWeek
	}
	if in.StartClock != nil {
		start = *in.StartClock
	}
	if in.EndClock != nil {
		end = *in.EndClock
	}
	if err := validateWindow(day, start, end); err != nil {
		return domain.Availability{}, err
	}

	return s.repo.Update(ctx, id, store.UpdateAvailabilityParams{
		DayOfWeek:  in.DayOfWeek,
		StartClock: in.StartClock,
		EndClock:   in.EndClock,
	})
}

func (s *Service) Delete(ctx context.Context, hostID, id uuid.UUID) error {
	if _, err := s.Get(ctx, hostID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, hostID uuid.UUID) ([]domain.Availability, error) {
	return s.repo.ListByHost(ctx, hostID)
}

// ListSlots expands the host's weekly windows across [from, to) into
// bookable slots of the event type's duration, skipping anything already
// taken by a confirmed schedule. The event type's max_advance_days caps
// how far from now the listing may reach.
func (s *Service) ListSlots(ctx context.Context, hostID, eventTypeID uuid.UUID, from, to time.Time) ([]domain.Slot, error) {
	eventType, err := s.events.Get(ctx, eventTypeID)
	if err != nil {
		return nil, err
	}
	if eventType.HostID != hostID {
		return nil, store.ErrPermissionDenied
	}

	from = from.UTC()
	to = to.UTC()
	if !to.After(from) {
		return nil, validationError("to must be after from")
	}

	now := s.now().UTC()
	horizon := now.Add(maxSlotLookahead)
	if eventType.MaxAdvanceDays != nil {
		advance := now.Add(time.Duration(*eventType.MaxAdvanceDays) * 24 * time.Hour)
		if advance.Before(horizon) {
			horizon = advance
		}
	}
	if to.After(horizon) {
		to = horizon
	}
	if !to.After(from) {
		return nil, nil
	}

	windows, err := s.repo.ListByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}

	booked, err := s.schedules.ListConfirmed(ctx, hostID, from, to)
	if err != nil {
		return nil, err
	}
	busy := make([]domain.TimeRange, 0, len(booked))
	for i := range booked {
		busy = append(busy, booked[i].Range())
	}

	return domain.ExpandWeeklySlots(windows, eventType.Duration(), from, to, busy)
}

func validateWindow(day int, startClock, endClock string) error {
	if day < 0 || day > 6 {
		return validationError("day_of_week must be between 0 and 6")
	}
	startMin, err := domain.ParseClock(startClock)
	if err != nil {
		return validationError("start_time must be in HH:MM form")
	}
	endMin, err := domain.ParseClock(endClock)
	if err != nil {
		return validationError("end_time must be in HH:MM form")
	}
	if endMin <= startMin {
		return validationError("end_time must be after start_time")
	}
	return nil
}
