package auth

import (
	"time"

	userUC "lending-ledger-backend/internal/usecase/user"
)

// Principal is the caller identity established by the gate.
type Principal struct {
	UserID   string
	Username string
	IsAdmin  bool
}

type RegisterInput struct {
	Username string
	Email    string
	Phone    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Session is returned by login and register.
type Session struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      userUC.UserDTO `json:"user"`
}
