package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lending-ledger-backend/internal/domain/apperr"
	domain "lending-ledger-backend/internal/domain/user"
	"lending-ledger-backend/internal/domain/uow"
	"lending-ledger-backend/pkg/id"
	"lending-ledger-backend/pkg/password"
)

type Usecase struct {
	repo   domain.Repository
	uow    uow.UnitOfWork
	hasher *password.Hasher
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork, h *password.Hasher) *Usecase {
	return &Usecase{repo: r, uow: tx, hasher: h}
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*ListOutput, error) {
	page := domain.Page{Number: in.Page, Size: in.Limit, Sort: "created_at", Desc: true}
	if page.Number < 1 {
		page.Number = DefaultPage
	}
	if page.Size < 1 {
		page.Size = DefaultLimit
	}
	if page.Size > MaxLimit {
		page.Size = MaxLimit
	}

	ve := &apperr.ValidationError{}
	if in.SortBy != "" {
		col, ok := domain.SortFields[in.SortBy]
		if !ok {
			ve.Add("sortBy", "is not a sortable field")
		}
		page.Sort = col
	}
	switch strings.ToLower(in.SortOrder) {
	case "", "desc":
	case "asc":
		page.Desc = false
	default:
		ve.Add("sortOrder", "must be asc or desc")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	users, total, err := u.repo.List(ctx, domain.Filter{Search: in.Search}, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := &ListOutput{
		Users:       make([]UserDTO, 0, len(users)),
		CurrentPage: page.Number,
		Total:       total,
		TotalPages:  int((total + int64(page.Size) - 1) / int64(page.Size)),
	}
	for i := range users {
		out.Users = append(out.Users, ToDTO(&users[i]))
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*UserDTO, error) {
	usr, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := ToDTO(usr)
	return &dto, nil
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*UserDTO, error) {
	status := domain.StatusActive
	if in.Status != "" {
		status = domain.Status(in.Status)
	}

	ve := &apperr.ValidationError{}
	domain.CheckUsername(ve, in.Username)
	domain.CheckEmail(ve, in.Email)
	domain.CheckPhone(ve, in.Phone)
	domain.CheckPassword(ve, in.Password)
	domain.CheckStatus(ve, status)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	usr := &domain.User{
		UserID:       id.NewID32(),
		Username:     strings.TrimSpace(in.Username),
		Email:        domain.NormalizeEmail(in.Email),
		Phone:        in.Phone,
		PasswordHash: hash,
		Status:       status,
		IsAdmin:      in.IsAdmin,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := ensureUnique(ctx, r.Users, usr.Username, usr.Email, usr.Phone, ""); err != nil {
			return err
		}
		return r.Users.Create(ctx, usr)
	})
	if err != nil {
		return nil, err
	}
	dto := ToDTO(usr)
	return &dto, nil
}

func (u *Usecase) Update(ctx context.Context, userID string, in UpdateInput) (*UserDTO, error) {
	ve := &apperr.ValidationError{}
	if in.Username != nil {
		domain.CheckUsername(ve, *in.Username)
	}
	if in.Email != nil {
		domain.CheckEmail(ve, *in.Email)
	}
	if in.Phone != nil {
		domain.CheckPhone(ve, *in.Phone)
	}
	if in.Password != nil {
		domain.CheckPassword(ve, *in.Password)
	}
	if in.Status != nil {
		domain.CheckStatus(ve, domain.Status(*in.Status))
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	var hash string
	if in.Password != nil {
		h, err := u.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = h
	}

	var dto UserDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		usr, err := r.Users.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}

		var username, email, phone string
		if in.Username != nil {
			username = strings.TrimSpace(*in.Username)
			usr.Username = username
		}
		if in.Email != nil {
			email = domain.NormalizeEmail(*in.Email)
			usr.Email = email
		}
		if in.Phone != nil {
			phone = *in.Phone
			usr.Phone = phone
		}
		if err := ensureUnique(ctx, r.Users, username, email, phone, usr.UserID); err != nil {
			return err
		}

		if in.Status != nil {
			usr.Status = domain.Status(*in.Status)
		}
		if in.IsAdmin != nil {
			usr.IsAdmin = *in.IsAdmin
		}
		if hash != "" {
			usr.PasswordHash = hash
		}
		if err := r.Users.Save(ctx, usr); err != nil {
			return err
		}
		dto = ToDTO(usr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// Delete removes target. An actor may never delete their own account,
// admin or not. Records created by the target are kept.
func (u *Usecase) Delete(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return domain.ErrSelfDelete
	}
	return u.repo.DeleteByUserID(ctx, targetID)
}

func ensureUnique(ctx context.Context, users domain.Repository, username, email, phone, exclude string) error {
	if username == "" && email == "" && phone == "" {
		return nil
	}
	_, err := users.FindConflict(ctx, username, email, phone, exclude)
	switch {
	case err == nil:
		return domain.ErrDuplicate
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("check user uniqueness: %w", err)
	}
}
