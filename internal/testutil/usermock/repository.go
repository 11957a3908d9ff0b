package usermock

import (
	"context"

	domain "lending-ledger-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// FindConflict defaults to ErrNotFound so "no conflict" needs no setup.
type Repo struct {
	CreateFn         func(ctx context.Context, u *domain.User) error
	GetByUserIDFn    func(ctx context.Context, userID string) (*domain.User, error)
	GetByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	FindConflictFn   func(ctx context.Context, username, email, phone, excludeUserID string) (*domain.User, error)
	SaveFn           func(ctx context.Context, u *domain.User) error
	DeleteByUserIDFn func(ctx context.Context, userID string) error
	ListFn           func(ctx context.Context, f domain.Filter, p domain.Page) ([]domain.User, int64, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) FindConflict(ctx context.Context, username, email, phone, excludeUserID string) (*domain.User, error) {
	if m.FindConflictFn != nil {
		return m.FindConflictFn(ctx, username, email, phone, excludeUserID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}

func (m *Repo) DeleteByUserID(ctx context.Context, userID string) error {
	if m.DeleteByUserIDFn != nil {
		return m.DeleteByUserIDFn(ctx, userID)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter, p domain.Page) ([]domain.User, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f, p)
	}
	return nil, 0, nil
}
