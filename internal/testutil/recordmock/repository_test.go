package recordmock

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "lending-ledger-backend/internal/domain/lending"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	r := &domain.Record{RecordID: "r1"}

	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Record) error {
			called = true
			if gotCtx != ctx || got != r {
				t.Fatalf("Create args mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, r); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	m = &Repo{}
	if err := m.Create(ctx, r); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_GetByRecordID(t *testing.T) {
	ctx := context.Background()
	want := &domain.Record{RecordID: "r2"}

	m := &Repo{
		GetByRecordIDFn: func(_ context.Context, recordID string) (*domain.Record, error) {
			if recordID != "r2" {
				t.Fatalf("recordID mismatch: got %s", recordID)
			}
			return want, nil
		},
	}
	got, err := m.GetByRecordID(ctx, "r2")
	if err != nil || got != want {
		t.Fatalf("GetByRecordID: got %v, %v", got, err)
	}

	m = &Repo{}
	if _, err := m.GetByRecordID(ctx, "r2"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByRecordID default: want context.Canceled, got %v", err)
	}
}

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if err := m.Save(ctx, &domain.Record{}); err != nil {
		t.Fatalf("Save default: %v", err)
	}
	if err := m.DeleteByRecordID(ctx, "r"); err != nil {
		t.Fatalf("DeleteByRecordID default: %v", err)
	}
	if _, err := m.GetByRecordIDForUpdate(ctx, "r"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByRecordIDForUpdate default: %v", err)
	}
	if _, _, err := m.List(ctx, domain.Filter{}, domain.Page{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("List default: %v", err)
	}
	if _, err := m.FindByRecordIDs(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("FindByRecordIDs default: %v", err)
	}
	if _, err := m.Summary(ctx, time.Now()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Summary default: %v", err)
	}
}
