package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/store"
)

const slugAttempts = 50

type EventTypeRepo struct {
	db *bun.DB
}

func NewEventTypeRepo(db *bun.DB) *EventTypeRepo {
	return &EventTypeRepo{db: db}
}

func (r *EventTypeRepo) Create(ctx context.Context, params store.CreateEventTypeParams) (domain.EventType, error) {
	// Only derived slugs are suffixed on collision; an explicit slug is
	// the caller's choice and a collision on it is a duplicate.
	explicit := params.Slug != ""
	base := params.Slug
	if !explicit {
		base = domain.Slugify(params.Name)
		if base == "" {
			base = "event"
		}
	}

	for attempt := 0; attempt < slugAttempts; attempt++ {
		m := domain.EventType{
			HostID:         params.HostID,
			Name:           params.Name,
			Slug:           slugCandidate(base, attempt),
			LocationKind:   params.LocationKind,
			LocationValue:  params.LocationValue,
			DurationMins:   params.DurationMins,
			MaxAdvanceDays: params.MaxAdvanceDays,
		}
		_, err := r.db.NewInsert().Model(&m).Exec(ctx)
		if err == nil {
			return m, nil
		}
		if isSlugCollision(err) {
			if explicit {
				return domain.EventType{}, store.ErrDuplicate
			}
			continue
		}
		return domain.EventType{}, err
	}
	return domain.EventType{}, store.ErrSlugExhausted
}

func (r *EventTypeRepo) Get(ctx context.Context, id uuid.UUID) (domain.EventType, error) {
	var row domain.EventType
	err := r.db.NewSelect().Model(&row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.EventType{}, store.ErrNotFound
	}
	if err != nil {
		return domain.EventType{}, err
	}
	return row, nil
}

func (r *EventTypeRepo) Update(ctx context.Context, id uuid.UUID, params store.UpdateEventTypeParams) (domain.EventType, error) {
	row, err := r.Get(ctx, id)
	if err != nil {
		return domain.EventType{}, err
	}

	reslug := false
	explicit := params.Slug != nil
	base := row.Slug
	if params.Name != nil {
		row.Name = *params.Name
		if !explicit {
			base = domain.Slugify(*params.Name)
			if base == "" {
				base = "event"
			}
			reslug = true
		}
	}
	if explicit {
		base = *params.Slug
		reslug = true
	}
	if params.LocationKind != nil {
		row.LocationKind = *params.LocationKind
	}
	if params.LocationValue != nil {
		row.LocationValue = *params.LocationValue
	}
	if params.DurationMins != nil {
		row.DurationMins = *params.DurationMins
	}
	if params.MaxAdvanceDays != nil {
		row.MaxAdvanceDays = params.MaxAdvanceDays
	}

	if !reslug {
		if _, err := r.db.NewUpdate().Model(&row).WherePK().Exec(ctx); err != nil {
			return domain.EventType{}, err
		}
		return row, nil
	}

	for attempt := 0; attempt < slugAttempts; attempt++ {
		row.Slug = slugCandidate(base, attempt)
		_, err := r.db.NewUpdate().Model(&row).WherePK().Exec(ctx)
		if err == nil {
			return row, nil
		}
		if isSlugCollision(err) {
			if explicit {
				return domain.EventType{}, store.ErrDuplicate
			}
			continue
		}
		return domain.EventType{}, err
	}
	return domain.EventType{}, store.ErrSlugExhausted
}

func (r *EventTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.EventType)(nil)).
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

func (r *EventTypeRepo) List(ctx context.Context, params store.ListEventTypesParams) ([]domain.EventType, int, error) {
	var rows []domain.EventType
	q := r.db.NewSelect().
		Model(&rows).
		Where("host_id = ?", params.HostID)
	if params.NameFilter != "" {
		q = q.Where("name ILIKE ?", "%"+params.NameFilter+"%")
	}
	total, err := q.
		OrderExpr("created_at ASC").
		Limit(params.Limit).
		Offset(params.Offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func slugCandidate(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}

func isSlugCollision(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		pgErr.ConstraintName == "event_types_host_slug_key"
}
