package mysql

import (
	"context"
	"errors"
	"strings"

	"lending-ledger-backend/internal/domain/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return duplicate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	return duplicate(r.db.WithContext(ctx).Save(u).Error)
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*user.User, error) {
	var out user.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, notFound(err, user.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var out user.User
	if err := r.db.WithContext(ctx).Where("email = ?", user.NormalizeEmail(email)).First(&out).Error; err != nil {
		return nil, notFound(err, user.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) FindConflict(ctx context.Context, username, email, phone, excludeUserID string) (*user.User, error) {
	var conds []clause.Expression
	if username != "" {
		conds = append(conds, clause.Eq{Column: "username", Value: username})
	}
	if email != "" {
		conds = append(conds, clause.Eq{Column: "email", Value: user.NormalizeEmail(email)})
	}
	if phone != "" {
		conds = append(conds, clause.Eq{Column: "phone", Value: phone})
	}
	if len(conds) == 0 {
		return nil, user.ErrNotFound
	}

	q := r.db.WithContext(ctx).Clauses(clause.Where{Exprs: []clause.Expression{clause.Or(conds...)}})
	if excludeUserID != "" {
		q = q.Where("user_id <> ?", excludeUserID)
	}
	var out user.User
	if err := q.First(&out).Error; err != nil {
		return nil, notFound(err, user.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) DeleteByUserID(ctx context.Context, userID string) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&user.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, f user.Filter, p user.Page) ([]user.User, int64, error) {
	filtered := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&user.User{})
		if s := strings.TrimSpace(f.Search); s != "" {
			like := "%" + escapeLike(strings.ToLower(s)) + "%"
			q = q.Where("LOWER(username) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!' OR phone LIKE ? ESCAPE '!'", like, like, like)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sort := p.Sort
	if sort == "" {
		sort = "created_at"
	}
	var out []user.User
	err := filtered().
		Order(clause.OrderByColumn{Column: clause.Column{Name: string(sort)}, Desc: p.Desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: p.Desc}).
		Limit(p.Size).
		Offset(p.Offset()).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// duplicate maps unique-index violations (translated by gorm) to the domain conflict.
func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return user.ErrDuplicate
	}
	return err
}
