package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/store"
)

type fakeEventTypeRepo struct {
	createFn func(ctx context.Context, params store.CreateEventTypeParams) (domain.EventType, error)
	getFn    func(ctx context.Context, id uuid.UUID) (domain.EventType, error)
	updateFn func(ctx context.Context, id uuid.UUID, params store.UpdateEventTypeParams) (domain.EventType, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
	listFn   func(ctx context.Context, params store.ListEventTypesParams) ([]domain.EventType, int, error)
}

func (f *fakeEventTypeRepo) Create(ctx context.Context, params store.CreateEventTypeParams) (domain.EventType, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, params)
}

func (f *fakeEventTypeRepo) Get(ctx context.Context, id uuid.UUID) (domain.EventType, error) {
	if f.getFn == nil {
		panic("Get not configured")
	}
	return f.getFn(ctx, id)
}

func (f *fakeEventTypeRepo) Update(ctx context.Context, id uuid.UUID, params store.UpdateEventTypeParams) (domain.EventType, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, id, params)
}

func (f *fakeEventTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn == nil {
		panic("Delete not configured")
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeEventTypeRepo) List(ctx context.Context, params store.ListEventTypesParams) ([]domain.EventType, int, error) {
	if f.listFn == nil {
		panic("List not configured")
	}
	return f.listFn(ctx, params)
}

var (
	hostA   = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	hostB   = uuid.MustParse("00000000-0000-0000-0000-000000000102")
	eventID = uuid.MustParse("00000000-0000-0000-0000-000000000201")
)

func validCreateInput() CreateInput {
	return CreateInput{
		HostID:        hostA,
		Name:          "Intro Call",
		LocationKind:  "video",
		LocationValue: "https://meet.example.com/intro",
		DurationMins:  30,
	}
}

func TestServiceCreate_Validation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(in *CreateInput)
		wantMsg string
	}{
		{"missing host", func(in *CreateInput) { in.HostID = uuid.Nil }, "host_id is required"},
		{"missing name", func(in *CreateInput) { in.Name = "  " }, "name is required"},
		{"bad slug", func(in *CreateInput) { in.Slug = "Has Spaces" }, "slug must contain only lowercase letters, digits and hyphens"},
		{"missing location kind", func(in *CreateInput) { in.LocationKind = "" }, "location_kind is required"},
		{"missing location value", func(in *CreateInput) { in.LocationValue = "" }, "location_value is required"},
		{"zero duration", func(in *CreateInput) { in.DurationMins = 0 }, "duration_mins must be at least 1"},
		{"bad advance days", func(in *CreateInput) { d := 0; in.MaxAdvanceDays = &d }, "max_advance_days must be at least 1"},
	}

	svc := NewService(&fakeEventTypeRepo{
		createFn: func(ctx context.Context, params store.CreateEventTypeParams) (domain.EventType, error) {
			t.Fatal("store reached despite invalid input")
			return domain.EventType{}, nil
		},
	})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
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

func TestServiceCreate_TrimsAndPassesThrough(t *testing.T) {
	var got store.CreateEventTypeParams
	svc := NewService(&fakeEventTypeRepo{
		createFn: func(ctx context.Context, params store.CreateEventTypeParams) (domain.EventType, error) {
			got = params
			return domain.EventType{ID: eventID, HostID: params.HostID}, nil
		},
	})

	in := validCreateInput()
	in.Name = "  Intro Call  "
	in.LocationKind = " video "
	_, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Name != "Intro Call" {
		t.Fatalf("name = %q, want %q", got.Name, "Intro Call")
	}
	if got.LocationKind != "video" {
		t.Fatalf("location kind = %q, want %q", got.LocationKind, "video")
	}
	if got.Slug != "" {
		t.Fatalf("slug = %q, want empty (store derives it)", got.Slug)
	}
}

func TestServiceGet_OwnershipEnforced(t *testing.T) {
	svc := NewService(&fakeEventTypeRepo{
		getFn: func(ctx context.Context, id uuid.UUID) (domain.EventType, error) {
			return domain.EventType{ID: id, HostID: hostA}, nil
		},
	})

	if _, err := svc.Get(context.Background(), hostA, eventID); err != nil {
		t.Fatalf("owner Get error: %v", err)
	}

	_, err := svc.Get(context.Background(), hostB, eventID)
	if !errors.Is(err, store.ErrPermissionDenied) {
		t.Fatalf("error = %v, want %v", err, store.ErrPermissionDenied)
	}
}

func TestServiceUpdate_OwnershipCheckedBeforeWrite(t *testing.T) {
	svc := NewService(&fakeEventTypeRepo{
		getFn: func(ctx context.Context, id uuid.UUID) (domain.EventType, error) {
			return domain.EventType{ID: id, HostID: hostA}, nil
		},
		updateFn: func(ctx context.Context, id uuid.UUID, params store.UpdateEventTypeParams) (domain.EventType, error) {
			t.Fatal("write reached for foreign host")
			return domain.EventType{}, nil
		},
	})

	name := "Renamed"
	_, err := svc.Update(context.Background(), hostB, eventID, UpdateInput{Name: &name})
	if !errors.Is(err, store.ErrPermissionDenied) {
		t.Fatalf("error = %v, want %v", err, store.ErrPermissionDenied)
	}
}

func TestServiceDelete_Owner(t *testing.T) {
	deleted := false
	svc := NewService(&fakeEventTypeRepo{
		getFn: func(ctx context.Context, id uuid.UUID) (domain.EventType, error) {
			return domain.EventType{ID: id, HostID: hostA}, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	})

	if err := svc.Delete(context.Background(), hostA, eventID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if !deleted {
		t.Fatal("store delete never invoked")
	}
}

func TestServiceList_PaginationClamped(t *testing.T) {
	var got store.ListEventTypesParams
	svc := NewService(&fakeEventTypeRepo{
		listFn: func(ctx context.Context, params store.ListEventTypesParams) ([]domain.EventType, int, error) {
			got = params
			return nil, 0, nil
		},
	})

	out, err := svc.List(context.Background(), ListInput{HostID: hostA, Page: 0, PerPage: 1000})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if got.Limit != 100 {
		t.Fatalf("limit = %d, want 100", got.Limit)
	}
	if got.Offset != 0 {
		t.Fatalf("offset = %d, want 0", got.Offset)
	}
	if out.Page != 1 || out.PerPage != 100 {
		t.Fatalf("page = %d per_page = %d, want 1 and 100", out.Page, out.PerPage)
	}
}
