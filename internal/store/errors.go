package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyCancelled = errors.New("already cancelled")
	ErrPermissionDenied = errors.New("permission denied")
	ErrDuplicate        = errors.New("duplicate record")

	// ErrContention marks lock or serialization failures. Nothing was
	// committed, so the caller may safely retry the whole operation.
	ErrContention = errors.New("storage contention")

	ErrSerialExhausted = errors.New("serial allocation attempts exhausted")
	ErrSlugExhausted   = errors.New("slug allocation attempts exhausted")
)

// ConflictError rejects a booking that would violate the
// no-double-booking invariant. ConflictingScheduleID identifies the
// committed schedule overlapping the candidate range; it is uuid.Nil when
// the database exclusion constraint fired before the offending row was
// identified.
type ConflictError struct {
	ConflictingScheduleID uuid.UUID
}

func (e *ConflictError) Error() string {
	if e.ConflictingScheduleID == uuid.Nil {
		return "time range conflicts with an existing schedule"
	}
	return fmt.Sprintf("time range conflicts with schedule %s", e.ConflictingScheduleID)
}
