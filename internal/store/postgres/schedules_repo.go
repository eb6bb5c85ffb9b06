package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/store"
)

const serialAttempts = 5

type ScheduleRepo struct {
	db *bun.DB
}

func NewScheduleRepo(db *bun.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

// InHostTransaction runs fn inside a transaction holding the host's
// advisory lock. Every conflict check and the write it guards happen
// under this lock, so for a fixed host the check-and-write pairs are
// fully serialized; distinct hosts never contend.
func (r *ScheduleRepo) InHostTransaction(ctx context.Context, hostID uuid.UUID, fn func(ctx context.Context, tx bun.Tx) error) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockHostSchedules(ctx, tx, hostID); err != nil {
			return err
		}
		return fn(ctx, tx)
	})
	return mapContention(err)
}

func lockHostSchedules(ctx context.Context, tx bun.Tx, hostID uuid.UUID) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", hostID.String()).Exec(ctx)
	return err
}

// findConflicting returns a confirmed schedule of the host overlapping
// the candidate range, excluding excludeID when non-nil. Half-open
// semantics: touching endpoints are not an overlap.
func findConflicting(ctx context.Context, idb bun.IDB, hostID uuid.UUID, candidate domain.TimeRange, excludeID uuid.UUID) (*domain.Schedule, error) {
	var row domain.Schedule
	q := idb.NewSelect().
		Model(&row).
		Where("host_id = ?", hostID).
		Where("status = ?", domain.ScheduleStatusConfirmed).
		Where("start_time < ?", candidate.End).
		Where("end_time > ?", candidate.Start)
	if excludeID != uuid.Nil {
		q = q.Where("id != ?", excludeID)
	}
	err := q.OrderExpr("start_time ASC").Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ScheduleRepo) Create(ctx context.Context, params store.CreateScheduleParams) (domain.Schedule, error) {
	var out domain.Schedule
	err := r.InHostTransaction(ctx, params.HostID, func(ctx context.Context, tx bun.Tx) error {
		existing, err := findConflicting(ctx, tx, params.HostID, params.Range, uuid.Nil)
		if err != nil {
			return err
		}
		if existing != nil {
			return &store.ConflictError{ConflictingScheduleID: existing.ID}
		}

		for attempt := 0; attempt < serialAttempts; attempt++ {
			serial, err := domain.NewScheduleSerial()
			if err != nil {
				return err
			}
			m := domain.Schedule{
				Serial:      serial,
				HostID:      params.HostID,
				EventTypeID: params.EventTypeID,
				StartTime:   params.Range.Start,
				EndTime:     params.Range.End,
				ClientName:  params.ClientName,
				ClientEmail: params.ClientEmail,
				Status:      domain.ScheduleStatusConfirmed,
			}
			_, err = tx.NewInsert().Model(&m).Exec(ctx)
			if err == nil {
				out = m
				return nil
			}
			if isSerialCollision(err) {
				continue
			}
			return mapScheduleWriteError(err)
		}
		return store.ErrSerialExhausted
	})
	if err != nil {
		return domain.Schedule{}, err
	}
	return out, nil
}

func (r *ScheduleRepo) Update(ctx context.Context, serial string, params store.UpdateScheduleParams) (domain.Schedule, error) {
	// Resolve the host outside the lock; the row itself is re-read and
	// re-validated under it.
	current, err := r.GetBySerial(ctx, serial)
	if err != nil {
		return domain.Schedule{}, err
	}

	var out domain.Schedule
	err = r.InHostTransaction(ctx, current.HostID, func(ctx context.Context, tx bun.Tx) error {
		var row domain.Schedule
		err := tx.NewSelect().Model(&row).Where("serial = ?", serial).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}
		if row.Status != domain.ScheduleStatusConfirmed {
			return store.ErrAlreadyCancelled
		}

		if params.StartTime != nil || params.EndTime != nil {
			start := row.StartTime
			end := row.EndTime
			if params.StartTime != nil {
				start = *params.StartTime
			}
			if params.EndTime != nil {
				end = *params.EndTime
			}
			candidate, err := domain.NewTimeRange(start, end)
			if err != nil {
				return err
			}
			conflicting, err := findConflicting(ctx, tx, row.HostID, candidate, row.ID)
			if err != nil {
				return err
			}
			if conflicting != nil {
				return &store.ConflictError{ConflictingScheduleID: conflicting.ID}
			}
			row.StartTime = candidate.Start
			row.EndTime = candidate.End
		}
		if params.ClientName != nil {
			row.ClientName = *params.ClientName
		}
		if params.ClientEmail != nil {
			row.ClientEmail = *params.ClientEmail
		}

		if _, err := tx.NewUpdate().Model(&row).WherePK().Exec(ctx); err != nil {
			return mapScheduleWriteError(err)
		}
		out = row
		return nil
	})
	if err != nil {
		return domain.Schedule{}, err
	}
	return out, nil
}

// Cancel is a single-row state transition and needs no host lock: the
// conditional update is atomic, and removing a row from the confirmed set
// can never introduce an overlap.
func (r *ScheduleRepo) Cancel(ctx context.Context, serial string) (domain.Schedule, error) {
	res, err := r.db.NewUpdate().
		Model((*domain.Schedule)(nil)).
		Set("status = ?", domain.ScheduleStatusCancelled).
		Set("updated_at = ?", time.Now().UTC()).
		Where("serial = ?", serial).
		Where("status = ?", domain.ScheduleStatusConfirmed).
		Exec(ctx)
	if err != nil {
		return domain.Schedule{}, mapContention(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Schedule{}, err
	}

	row, getErr := r.GetBySerial(ctx, serial)
	if getErr != nil {
		return domain.Schedule{}, getErr
	}
	if affected == 0 {
		return domain.Schedule{}, store.ErrAlreadyCancelled
	}
	return row, nil
}

func (r *ScheduleRepo) GetBySerial(ctx context.Context, serial string) (domain.Schedule, error) {
	var row domain.Schedule
	err := r.db.NewSelect().Model(&row).Where("serial = ?", serial).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Schedule{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Schedule{}, err
	}
	return row, nil
}

func (r *ScheduleRepo) ListConfirmed(ctx context.Context, hostID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Schedule, error) {
	var rows []domain.Schedule
	err := r.db.NewSelect().
		Model(&rows).
		Where("host_id = ?", hostID).
		Where("status = ?", domain.ScheduleStatusConfirmed).
		Where("start_time < ?", windowEnd).
		Where("end_time > ?", windowStart).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func isSerialCollision(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		pgErr.ConstraintName == "schedules_serial_key"
}

// mapScheduleWriteError translates constraint violations raised by the
// storage backstop into the application-level conflict. The advisory lock
// makes these unreachable in normal operation.
func mapScheduleWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23P01" && pgErr.ConstraintName == "schedules_no_overlap":
			return &store.ConflictError{}
		case pgErr.Code == "23505" && pgErr.ConstraintName == "schedules_host_start_confirmed_key":
			return &store.ConflictError{}
		}
	}
	return err
}

// mapContention classifies serialization failures, deadlocks and lock
// timeouts as retryable: the transaction rolled back whole, so no partial
// state was committed.
func mapContention(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return store.ErrContention
		}
	}
	return err
}
