package user

import (
	"time"

	domain "lending-ledger-backend/internal/domain/user"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type CreateInput struct {
	Username string
	Email    string
	Phone    string
	Password string
	Status   string
	IsAdmin  bool
}

// UpdateInput is a partial update; a present Password is re-hashed.
type UpdateInput struct {
	Username *string
	Email    *string
	Phone    *string
	Password *string
	Status   *string
	IsAdmin  *bool
}

type ListInput struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// UserDTO is the public projection of a user; the hash never leaves the service.
type UserDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListOutput struct {
	Users       []UserDTO `json:"users"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	Total       int64     `json:"total"`
}

func ToDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Status:    string(u.Status),
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
