package events

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/store"
)

const maxNameLen = 255

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Service manages a host's event types. All operations are owner-scoped:
// the acting host comes in explicitly, never from ambient state.
type Service struct {
	repo store.EventTypeRepository
}

func NewService(repo store.EventTypeRepository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	HostID         uuid.UUID
	Name           string
	Slug           string
	LocationKind   string
	LocationValue  string
	DurationMins   int
	MaxAdvanceDays *int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.EventType, error) {
	if in.HostID == uuid.Nil {
		return domain.EventType{}, validationError("host_id is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.EventType{}, validationError("name is required")
	}
	if len(name) > maxNameLen {
		return domain.EventType{}, validationError("name too long")
	}
	slug := strings.TrimSpace(in.Slug)
	if slug != "" && domain.Slugify(slug) != slug {
		return domain.EventType{}, validationError("slug must contain only lowercase letters, digits and hyphens")
	}
	if strings.TrimSpace(in.LocationKind) == "" {
		return domain.EventType{}, validationError("location_kind is required")
	}
	if strings.TrimSpace(in.LocationValue) == "" {
		return domain.EventType{}, validationError("location_value is required")
	}
	if in.DurationMins < 1 {
		return domain.EventType{}, validationError("duration_mins must be at least 1")
	}
	if in.MaxAdvanceDays != nil && *in.MaxAdvanceDays < 1 {
		return domain.EventType{}, validationError("max_advance_days must be at least 1")
	}

	return s.repo.Create(ctx, store.CreateEventTypeParams{
		HostID:         in.HostID,
		Name:           name,
		Slug:           slug,
		LocationKind:   strings.TrimSpace(in.LocationKind),
		LocationValue:  strings.TrimSpace(in.LocationValue),
		DurationMins:   in.DurationMins,
		MaxAdvanceDays: in.MaxAdvanceDays,
	})
}

func (s *Service) Get(ctx context.Context, hostID, id uuid.UUID) (domain.EventType, error) {
	eventType, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.EventType{}, err
	}
	if eventType.HostID != hostID {
		return domain.EventType{}, store.ErrPermissionDenied
	}
	return eventType, nil
}

type UpdateInput struct {
	Name           *string
	Slug           *string
	LocationKind   *string
	LocationValue  *string
	DurationMins   *int
	MaxAdvanceDays *int
}

func (s *Service) Update(ctx context.Context, hostID, id uuid.UUID, in UpdateInput) (domain.EventType, error) {
	if _, err := s.Get(ctx, hostID, id); err != nil {
		return domain.EventType{}, err
	}

	params := store.UpdateEventTypeParams{
		MaxAdvanceDays: in.MaxAdvanceDays,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.EventType{}, validationError("name is required")
		}
		if len(name) > maxNameLen {
			return domain.EventType{}, validationError("name too long")
		}
		params.Name = &name
	}
	if in.Slug != nil {
		slug := strings.TrimSpace(*in.Slug)
		if slug == "" || domain.Slugify(slug) != slug {
			return domain.EventType{}, validationError("slug must contain only lowercase letters, digits and hyphens")
		}
		params.Slug = &slug
	}
	if in.LocationKind != nil {
		kind := strings.TrimSpace(*in.LocationKind)
		if kind == "" {
			return domain.EventType{}, validationError("location_kind is required")
		}
		params.LocationKind = &kind
	}
	if in.LocationValue != nil {
		value := strings.TrimSpace(*in.LocationValue)
		if value == "" {
			return domain.EventType{}, validationError("location_value is required")
		}
		params.LocationValue = &value
	}
	if in.DurationMins != nil {
		if *in.DurationMins < 1 {
			return domain.EventType{}, validationError("duration_mins must be at least 1")
		}
		params.DurationMins = in.DurationMins
	}
	if in.MaxAdvanceDays != nil && *in.MaxAdvanceDays < 1 {
		return domain.EventType{}, validationError("max_advance_days must be at least 1")
	}

	return s.repo.Update(ctx, id, params)
}

func (s *Service) Delete(ctx context.Context, hostID, id uuid.UUID) error {
	if _, err := s.Get(ctx, hostID, id); err != nil {
		return err
	}
	// Deleting an event type cascades to its schedules at the storage
	// layer: the event type owns their existence.
	return s.repo.Delete(ctx, id)
}

type ListInput struct {
	HostID     uuid.UUID
	NameFilter string
	Page       int
	PerPage    int
}

type ListOutput struct {
	Items   []domain.EventType
	Total   int
	Page    int
	PerPage int
}

func (s *Service) List(ctx context.Context, in ListInput) (ListOutput, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	perPage := in.PerPage
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	items, total, err := s.repo.List(ctx, store.ListEventTypesParams{
		HostID:     in.HostID,
		NameFilter: strings.TrimSpace(in.NameFilter),
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
	})
	if err != nil {
		return ListOutput{}, err
	}
	return ListOutput{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}
