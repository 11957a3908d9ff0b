package user

import (
	"fmt"
	"strings"
	"time"

	"lending-ledger-backend/internal/domain/apperr"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

func (s Status) Valid() bool { return s == StatusActive || s == StatusInactive }

var (
	ErrNotFound   = fmt.Errorf("user %w", apperr.ErrNotFound)
	ErrDuplicate  = fmt.Errorf("user already exists with this email, username, or phone number: %w", apperr.ErrConflict)
	ErrSelfDelete = fmt.Errorf("cannot delete your own account: %w", apperr.ErrForbidden)
)

// User is an operator of the ledger. PasswordHash never leaves the service.
type User struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID       string    `gorm:"size:32;not null;uniqueIndex:ux_users_user_id" json:"id"`
	Username     string    `gorm:"size:30;not null;uniqueIndex:ux_users_username" json:"username"`
	Email        string    `gorm:"size:254;not null;uniqueIndex:ux_users_email" json:"email"`
	Phone        string    `gorm:"size:10;not null;uniqueIndex:ux_users_phone" json:"phone"`
	PasswordHash string    `gorm:"size:72;not null" json:"-"`
	Status       Status    `gorm:"size:16;not null;default:'Active'" json:"status"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) Active() bool { return u.Status == StatusActive }

// NormalizeEmail lower-cases and trims an address so lookups are stable.
func NormalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// Filter is a case-insensitive substring over username, email and phone.
type Filter struct {
	Search string
}

type SortField string

var SortFields = map[string]SortField{
	"username":  "username",
	"email":     "email",
	"phone":     "phone",
	"status":    "status",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type Page struct {
	Number int
	Size   int
	Sort   SortField
	Desc   bool
}

func (p Page) Offset() int { return (p.Number - 1) * p.Size }
