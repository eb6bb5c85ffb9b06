package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/store"
)

type AvailabilityRepo struct {
	db *bun.DB
}

func NewAvailabilityRepo(db *bun.DB) *AvailabilityRepo {
	return &AvailabilityRepo{db: db}
}

func (r *AvailabilityRepo) Create(ctx context.Context, params store.CreateAvailabilityParams) (domain.Availability, error) {
	m := domain.Availability{
		HostID:     params.HostID,
		DayOfWeek:  params.DayOfWeek,
		StartClock: params.StartClock,
		EndClock:   params.EndClock,
	}
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Availability{}, mapAvailabilityWriteError(err)
	}
	return m, nil
}

func (r *AvailabilityRepo) Get(ctx context.Context, id uuid.UUID) (domain.Availability, error) {
	var row domain.Availability
	err := r.db.NewSelect().Model(&row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Availability{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Availability{}, err
	}
	return row, nil
}

func (r *AvailabilityRepo) Update(ctx context.Context, id uuid.UUID, params store.UpdateAvailabilityParams) (domain.Availability, error) {
	row, err := r.Get(ctx, id)
	if err != nil {
		return domain.Availability{}, err
	}
	if params.DayOfWeek != nil {
		row.DayOfWeek = *params.DayOfWeek
	}
	if params.StartClock != nil {
		row.StartClock = *params.StartClock
	}
	if params.EndClock != nil {
		row.EndClock = *params.EndClock
	}
	if _, err := r.db.NewUpdate().Model(&row).WherePK().Exec(ctx); err != nil {
		return domain.Availability{}, mapAvailabilityWriteError(err)
	}
	return row, nil
}

func (r *AvailabilityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.Availability)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *AvailabilityRepo) ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Availability, error) {
	var rows []domain.Availability
	err := r.db.NewSelect().
		Model(&rows).
		Where("host_id = ?", hostID).
		OrderExpr("day_of_week ASC, start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func mapAvailabilityWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return store.ErrDuplicate
	}
	return err
}
