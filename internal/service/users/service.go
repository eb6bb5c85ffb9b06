package users

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Service exposes a host's own profile and preference record.
type Service struct {
	users       store.UserRepository
	preferences store.PreferenceRepository
}

func NewService(users store.UserRepository, preferences store.PreferenceRepository) *Service {
	return &Service{users: users, preferences: preferences}
}

func (s *Service) Profile(ctx context.Context, hostID uuid.UUID) (domain.User, error) {
	return s.users.GetByID(ctx, hostID)
}

func (s *Service) Preference(ctx context.Context, hostID uuid.UUID) (domain.UserPreference, error) {
	return s.preferences.GetByHost(ctx, hostID)
}

// SetPreference stores the host's timezone. The value is an opaque
// passthrough attribute; booking logic never interprets it.
func (s *Service) SetPreference(ctx context.Context, hostID uuid.UUID, timezone string) (domain.UserPreference, error) {
	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		return domain.UserPreference{}, &ValidationError{msg: "timezone is required"}
	}
	if len(timezone) > 64 {
		return domain.UserPreference{}, &ValidationError{msg: "timezone too long"}
	}
	return s.preferences.Upsert(ctx, hostID, timezone)
}
