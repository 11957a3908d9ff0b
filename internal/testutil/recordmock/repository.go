package recordmock

import (
	"context"
	"time"

	domain "lending-ledger-backend/internal/domain/lending"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a nil-error no-op; reads default to context.Canceled.
type Repo struct {
	CreateFn                 func(ctx context.Context, r *domain.Record) error
	GetByRecordIDFn          func(ctx context.Context, recordID string) (*domain.Record, error)
	GetByRecordIDForUpdateFn func(ctx context.Context, recordID string) (*domain.Record, error)
	SaveFn                   func(ctx context.Context, r *domain.Record) error
	DeleteByRecordIDFn       func(ctx context.Context, recordID string) error
	ListFn                   func(ctx context.Context, f domain.Filter, p domain.Page) ([]domain.Record, int64, error)
	FindByRecordIDsFn        func(ctx context.Context, recordIDs []string) ([]domain.Record, error)
	SummaryFn                func(ctx context.Context, now time.Time) (*domain.Summary, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRecordID(ctx context.Context, recordID string) (*domain.Record, error) {
	if m.GetByRecordIDFn != nil {
		return m.GetByRecordIDFn(ctx, recordID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByRecordIDForUpdate(ctx context.Context, recordID string) (*domain.Record, error) {
	if m.GetByRecordIDForUpdateFn != nil {
		return m.GetByRecordIDForUpdateFn(ctx, recordID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, r *domain.Record) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) DeleteByRecordID(ctx context.Context, recordID string) error {
	if m.DeleteByRecordIDFn != nil {
		return m.DeleteByRecordIDFn(ctx, recordID)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter, p domain.Page) ([]domain.Record, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f, p)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) FindByRecordIDs(ctx context.Context, recordIDs []string) ([]domain.Record, error) {
	if m.FindByRecordIDsFn != nil {
		return m.FindByRecordIDsFn(ctx, recordIDs)
	}
	return nil, context.Canceled
}

func (m *Repo) Summary(ctx context.Context, now time.Time) (*domain.Summary, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx, now)
	}
	return nil, context.Canceled
}
