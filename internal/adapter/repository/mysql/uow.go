package mysql

import (
	"context"

	"lending-ledger-backend/internal/domain/lending"
	"lending-ledger-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Records: &RecordRepository{db: tx},
		Users:   &UserRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repos(tx))
	})
}

func (u *GormUoW) WithinRecordTx(ctx context.Context, recordID string, fn func(r uow.Repos, rec *lending.Record) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		// lock the record row up-front so concurrent patches serialize
		rec, err := r.Records.GetByRecordIDForUpdate(ctx, recordID)
		if err != nil {
			return err
		}
		return fn(r, rec)
	})
}
