package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// FindConflict returns any user other than excludeUserID sharing one of
	// the non-empty unique fields, or ErrNotFound.
	FindConflict(ctx context.Context, username, email, phone, excludeUserID string) (*User, error)
	Save(ctx context.Context, u *User) error
	DeleteByUserID(ctx context.Context, userID string) error
	List(ctx context.Context, f Filter, p Page) ([]User, int64, error)
}
