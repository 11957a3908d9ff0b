package lending

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByRecordID(ctx context.Context, recordID string) (*Record, error)
	// GetByRecordIDForUpdate locks the row for the enclosing transaction.
	GetByRecordIDForUpdate(ctx context.Context, recordID string) (*Record, error)
	Save(ctx context.Context, r *Record) error
	DeleteByRecordID(ctx context.Context, recordID string) error
	List(ctx context.Context, f Filter, p Page) ([]Record, int64, error)
	FindByRecordIDs(ctx context.Context, recordIDs []string) ([]Record, error)
	Summary(ctx context.Context, now time.Time) (*Summary, error)
}
