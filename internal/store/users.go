package store

import (
	"context"

	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

type PreferenceRepository interface {
	GetByHost(ctx context.Context, hostID uuid.UUID) (domain.UserPreference, error)
	Upsert(ctx context.Context, hostID uuid.UUID, timezone string) (domain.UserPreference, error)
}
