package uow

import (
	"context"

	"lending-ledger-backend/internal/domain/lending"
	"lending-ledger-backend/internal/domain/user"
)

type Repos struct {
	Records lending.Repository
	Users   user.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinRecordTx locks the record first and passes it in; the record
	// write in fn is the read-modify-write unit for partial updates.
	WithinRecordTx(ctx context.Context, recordID string, fn func(r Repos, rec *lending.Record) error) error
}
