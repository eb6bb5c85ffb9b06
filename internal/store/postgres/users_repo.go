package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/store"
)

type UserRepo struct {
	db *bun.DB
}

func NewUserRepo(db *bun.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	var row domain.User
	err := r.db.NewSelect().Model(&row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, store.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return row, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var row domain.User
	err := r.db.NewSelect().Model(&row).Where("lower(email) = lower(?)", email).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, store.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return row, nil
}

type PreferenceRepo struct {
	db *bun.DB
}

func NewPreferenceRepo(db *bun.DB) *PreferenceRepo {
	return &PreferenceRepo{db: db}
}

func (r *PreferenceRepo) GetByHost(ctx context.Context, hostID uuid.UUID) (domain.UserPreference, error) {
	var row domain.UserPreference
	err := r.db.NewSelect().Model(&row).Where("host_id = ?", hostID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserPreference{}, store.ErrNotFound
	}
	if err != nil {
		return domain.UserPreference{}, err
	}
	return row, nil
}

func (r *PreferenceRepo) Upsert(ctx context.Context, hostID uuid.UUID, timezone string) (domain.UserPreference, error) {
	m := domain.UserPreference{
		HostID:   hostID,
		Timezone: timezone,
	}
	_, err := r.db.NewInsert().
		Model(&m).
		On("CONFLICT (host_id) DO UPDATE").
		Set("timezone = EXCLUDED.timezone").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return domain.UserPreference{}, err
	}
	return r.GetByHost(ctx, hostID)
}
