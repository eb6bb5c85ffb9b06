package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/store"
)

type fakeScheduleRepo struct {
	createFn        func(ctx context.Context, params store.CreateScheduleParams) (domain.Schedule, error)
	updateFn        func(ctx context.Context, serial string, params store.UpdateScheduleParams) (domain.Schedule, error)
	cancelFn        func(ctx context.Context, serial string) (domain.Schedule, error)
	getBySerialFn   func(ctx context.Context, serial string) (domain.Schedule, error)
	listConfirmedFn func(ctx context.Context, hostID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Schedule, error)
}

func (f *fakeScheduleRepo) Create(ctx context.Context, params store.CreateScheduleParams) (domain.Schedule, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, params)
}

func (f *fakeScheduleRepo) Update(ctx context.Context, serial string, params store.UpdateScheduleParams) (domain.Schedule, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, serial, params)
}

func (f *fakeScheduleRepo) Cancel(ctx context.Context, serial string) (domain.Schedule, error) {
	if f.cancelFn == nil {
		panic("Cancel not configured")
	}
	return f.cancelFn(ctx, serial)
}

func (f *fakeScheduleRepo) GetBySerial(ctx context.Context, serial string) (domain.Schedule, error) {
	if f.getBySerialFn == nil {
		panic("GetBySerial not configured")
	}
	return f.getBySerialFn(ctx, serial)
}

func (f *fakeScheduleRepo) ListConfirmed(ctx context.Context, hostID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Schedule, error) {
	if f.listConfirmedFn == nil {
		panic("ListConfirmed not configured")
	}
	return f.listConfirmedFn(ctx, hostID, windowStart, windowEnd)
}

type fakeEventTypeRepo struct {
	getFn func(ctx context.Context, id uuid.UUID) (domain.EventType, error)
}

func (f *fakeEventTypeRepo) Create(ctx context.Context, params store.CreateEventTypeParams) (domain.EventType, error) {
	panic("not used")
}

func (f *fakeEventTypeRepo) Get(ctx context.Context, id uuid.UUID) (domain.EventType, error) {
	if f.getFn == nil {
		panic("Get not configured")
	}
	return f.getFn(ctx, id)
}

func (f *fakeEventTypeRepo) Update(ctx context.Context, id uuid.UUID, params store.UpdateEventTypeParams) (domain.EventType, error) {
	panic("not used")
}

func (f *fakeEventTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	panic("not used")
}

func (f *fakeEventTypeRepo) List(ctx context.Context, params store.ListEventTypesParams) ([]domain.EventType, int, error) {
	panic("not used")
}

var (
	testHostID      = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	testEventTypeID = uuid.MustParse("00000000-0000-0000-0000-000000000201")
)

func testEventTypeRepo() *fakeEventTypeRepo {
	return &fakeEventTypeRepo{
		getFn: func(ctx context.Context, id uuid.UUID) (domain.EventType, error) {
			return domain.EventType{ID: id, HostID: testHostID, DurationMins: 60}, nil
		},
	}
}

func TestServiceCreate_ValidationErrors(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	valid := CreateInput{
		EventTypeID: testEventTypeID,
		StartTime:   start,
		EndTime:     end,
		ClientName:  "Ada",
		ClientEmail: "ada@example.com",
	}

	cases := []struct {
		name    string
		mutate  func(in *CreateInput)
		wantMsg string
	}{
		{"missing event type", func(in *CreateInput) { in.EventTypeID = uuid.Nil }, "event_type_id is required"},
		{"missing client name", func(in *CreateInput) { in.ClientName = "  " }, "client_name is required"},
		{"missing client email", func(in *CreateInput) { in.ClientEmail = "" }, "client_email is required"},
		{"malformed email", func(in *CreateInput) { in.ClientEmail = "not-an-email" }, "client_email must be a valid email address"},
		{"end before start", func(in *CreateInput) { in.EndTime = in.StartTime.Add(-time.Minute) }, "end_time must be after start_time"},
		{"zero length", func(in *CreateInput) { in.EndTime = in.StartTime }, "end_time must be after start_time"},
	}

	svc := NewService(&fakeScheduleRepo{
		createFn: func(ctx context.Context, params store.CreateScheduleParams) (domain.Schedule, error) {
			t.Fatal("store reached despite invalid input")
			return domain.Schedule{}, nil
		},
	}, testEventTypeRepo())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)

			_, err := svc.Create(context.Background(), in)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if vErr.Error() != tc.wantMsg {
				t.Fatalf("error = %q, want %q", vErr.Error(), tc.wantMsg)
			}
		})
	}
}

func TestServiceCreate_ResolvesHostFromEventType(t *testing.T) {
	var got store.CreateScheduleParams
	svc := NewService(&fakeScheduleRepo{
		createFn: func(ctx context.Context, params store.CreateScheduleParams) (domain.Schedule, error) {
			got = params
			return domain.Schedule{Serial: "SCH-AAAAAAAA", HostID: params.HostID}, nil
		},
	}, testEventTypeRepo())

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), CreateInput{
		EventTypeID: testEventTypeID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		ClientName:  "  Ada  ",
		ClientEmail: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.HostID != testHostID {
		t.Fatalf("host id = %s, want %s", got.HostID, testHostID)
	}
	if got.EventTypeID != testEventTypeID {
		t.Fatalf("event type id = %s, want %s", got.EventTypeID, testEventTypeID)
	}
	if got.ClientName != "Ada" {
		t.Fatalf("client name = %q, want %q", got.ClientName, "Ada")
	}
	if got.Range.Start.Location() != time.UTC {
		t.Fatalf("range not normalized to UTC: %v", got.Range.Start)
	}
}

func TestServiceCreate_UnknownEventType(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, &fakeEventTypeRepo{
		getFn: func(ctx context.Context, id uuid.UUID) (domain.EventType, error) {
			return domain.EventType{}, store.ErrNotFound
		},
	})

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), CreateInput{
		EventTypeID: testEventTypeID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		ClientName:  "Ada",
		ClientEmail: "ada@example.com",
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, store.ErrNotFound)
	}
}

func TestServiceCreate_PropagatesConflict(t *testing.T) {
	conflictID := uuid.MustParse("00000000-0000-0000-0000-000000000301")
	svc := NewService(&fakeScheduleRepo{
		createFn: func(ctx context.Context, params store.CreateScheduleParams) (domain.Schedule, error) {
			return domain.Schedule{}, &store.ConflictError{ConflictingScheduleID: conflictID}
		},
	}, testEventTypeRepo())

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), CreateInput{
		EventTypeID: testEventTypeID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		ClientName:  "Ada",
		ClientEmail: "ada@example.com",
	})

	var cErr *store.ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("error type = %T, want *store.ConflictError", err)
	}
	if cErr.ConflictingScheduleID != conflictID {
		t.Fatalf("conflicting id = %s, want %s", cErr.ConflictingScheduleID, conflictID)
	}
}

func TestServiceUpdate_Validation(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{
		updateFn: func(ctx context.Context, serial string, params store.UpdateScheduleParams) (domain.Schedule, error) {
			t.Fatal("store reached despite invalid input")
			return domain.Schedule{}, nil
		},
	}, testEventTypeRepo())

	t.Run("empty serial", func(t *testing.T) {
		_, err := svc.Update(context.Background(), "  ", UpdateInput{})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error type = %T, want *ValidationError", err)
		}
	})

	t.Run("inverted explicit range", func(t *testing.T) {
		start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		end := start.Add(-time.Hour)
		_, err := svc.Update(context.Background(), "SCH-AAAAAAAA", UpdateInput{StartTime: &start, EndTime: &end})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error type = %T, want *ValidationError", err)
		}
	})

	t.Run("bad email", func(t *testing.T) {
		email := "nope"
		_, err := svc.Update(context.Background(), "SCH-AAAAAAAA", UpdateInput{ClientEmail: &email})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error type = %T, want *ValidationError", err)
		}
	})
}

func TestServiceUpdate_PartialRangeReachesStore(t *testing.T) {
	var got store.UpdateScheduleParams
	svc := NewService(&fakeScheduleRepo{
		updateFn: func(ctx context.Context, serial string, params store.UpdateScheduleParams) (domain.Schedule, error) {
			got = params
			return domain.Schedule{Serial: serial}, nil
		},
	}, testEventTypeRepo())

	// Only a new start; the store composes the candidate range with the
	// stored end under the host lock.
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err := svc.Update(context.Background(), "SCH-AAAAAAAA", UpdateInput{StartTime: &start})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.StartTime == nil || !got.StartTime.Equal(start) {
		t.Fatalf("start = %v, want %v", got.StartTime, start)
	}
	if got.EndTime != nil {
		t.Fatalf("end = %v, want nil", got.EndTime)
	}
}

func TestServiceCancel_PropagatesStoreErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", store.ErrNotFound},
		{"already cancelled", store.ErrAlreadyCancelled},
		{"contention", store.ErrContention},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(&fakeScheduleRepo{
				cancelFn: func(ctx context.Context, serial string) (domain.Schedule, error) {
					return domain.Schedule{}, tc.err
				},
			}, testEventTypeRepo())

			_, err := svc.Cancel(context.Background(), "SCH-AAAAAAAA")
			if !errors.Is(err, tc.err) {
				t.Fatalf("error = %v, want %v", err, tc.err)
			}
		})
	}
}

func TestServiceLookup_TrimsSerial(t *testing.T) {
	var gotSerial string
	svc := NewService(&fakeScheduleRepo{
		getBySerialFn: func(ctx context.Context, serial string) (domain.Schedule, error) {
			gotSerial = serial
			return domain.Schedule{Serial: serial}, nil
		},
	}, testEventTypeRepo())

	_, err := svc.Lookup(context.Background(), "  SCH-AAAAAAAA  ")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if gotSerial != "SCH-AAAAAAAA" {
		t.Fatalf("serial = %q, want %q", gotSerial, "SCH-AAAAAAAA")
	}
}
