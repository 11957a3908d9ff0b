package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lending-ledger-backend/internal/domain/apperr"
	domain "lending-ledger-backend/internal/domain/user"
	userUC "lending-ledger-backend/internal/usecase/user"
	"lending-ledger-backend/pkg/password"
	"lending-ledger-backend/pkg/sl"
	"lending-ledger-backend/pkg/token"
)

// UserCreator is the user-management entry point register reuses.
type UserCreator interface {
	Create(ctx context.Context, in userUC.CreateInput) (*userUC.UserDTO, error)
}

// FailureRecorder counts rejected logins and bearer checks.
type FailureRecorder interface {
	AuthFailed()
}

type Usecase struct {
	users     domain.Repository
	creator   UserCreator
	tokens    *token.Maker
	hasher    *password.Hasher
	dummyHash string
	metrics   FailureRecorder
	log       *slog.Logger
	now       func() time.Time
}

type Option func(*Usecase)

func WithMetrics(m FailureRecorder) Option { return func(u *Usecase) { u.metrics = m } }
func WithLogger(l *slog.Logger) Option { return func(u *Usecase) { u.log = l } }

func NewUsecase(users domain.Repository, creator UserCreator, tokens *token.Maker, hasher *password.Hasher, opts ...Option) (*Usecase, error) {
	// compared against when the email is unknown, so a miss costs one bcrypt like a hit
	dummy, err := hasher.Hash("lending-ledger-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("auth: dummy hash: %w", err)
	}
	u := &Usecase{
		users:     users,
		creator:   creator,
		tokens:    tokens,
		hasher:    hasher,
		dummyHash: dummy,
		log:       slog.Default(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(u)
	}
	return u, nil
}

// Authenticate resolves an Authorization header value to an active
// principal. Every rejection is apperr.ErrUnauthorized; the cause is only
// logged at debug level.
func (u *Usecase) Authenticate(ctx context.Context, header string) (*Principal, error) {
	usr, err := u.authenticate(ctx, header)
	if err != nil {
		return nil, err
	}
	return &Principal{UserID: usr.UserID, Username: usr.Username, IsAdmin: usr.IsAdmin}, nil
}

// Verify returns the public fields of the token's user.
func (u *Usecase) Verify(ctx context.Context, header string) (*userUC.UserDTO, error) {
	usr, err := u.authenticate(ctx, header)
	if err != nil {
		return nil, err
	}
	dto := userUC.ToDTO(usr)
	return &dto, nil
}

func (u *Usecase) authenticate(ctx context.Context, header string) (*domain.User, error) {
	raw, ok := token.FromHeader(header)
	if !ok {
		return nil, u.reject(ctx, "no bearer credential", nil)
	}
	sub, err := u.tokens.Parse(raw)
	if err != nil {
		return nil, u.reject(ctx, "token rejected", err)
	}
	usr, err := u.users.GetByUserID(ctx, sub)
	if err != nil {
		return nil, u.reject(ctx, "token subject lookup failed", err)
	}
	if !usr.Active() {
		return nil, u.reject(ctx, "token subject inactive", nil)
	}
	return usr, nil
}

// Login fails with apperr.ErrInvalidCredentials for an unknown email, an
// inactive account and a wrong password alike.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (*Session, error) {
	usr, err := u.users.GetByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		_ = u.hasher.Compare(u.dummyHash, in.Password)
		return nil, u.denyLogin(ctx, "unknown email", nil)
	case err != nil:
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := u.hasher.Compare(usr.PasswordHash, in.Password); err != nil {
		return nil, u.denyLogin(ctx, "password check failed", err)
	}
	if !usr.Active() {
		return nil, u.denyLogin(ctx, "account inactive", nil)
	}
	return u.session(usr.UserID, userUC.ToDTO(usr))
}

// Register creates an Active, non-admin user and signs them in.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	dto, err := u.creator.Create(ctx, userUC.CreateInput{
		Username: in.Username,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
		Status:   string(domain.StatusActive),
	})
	if err != nil {
		return nil, err
	}
	return u.session(dto.ID, *dto)
}

func (u *Usecase) session(userID string, dto userUC.UserDTO) (*Session, error) {
	issuedAt := u.now()
	tok, err := u.tokens.Issue(userID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: tok, ExpiresAt: issuedAt.Add(u.tokens.TTL()).UTC(), User: dto}, nil
}

func (u *Usecase) reject(ctx context.Context, reason string, cause error) error {
	attrs := []any{slog.String("reason", reason)}
	if cause != nil {
		attrs = append(attrs, sl.Err(cause))
	}
	u.log.DebugContext(ctx, "bearer rejected", attrs...)
	if u.metrics != nil {
		u.metrics.AuthFailed()
	}
	return apperr.ErrUnauthorized
}

func (u *Usecase) denyLogin(ctx context.Context, reason string, cause error) error {
	attrs := []any{slog.String("reason", reason)}
	if cause != nil {
		attrs = append(attrs, sl.Err(cause))
	}
	u.log.DebugContext(ctx, "login denied", attrs...)
	if u.metrics != nil {
		u.metrics.AuthFailed()
	}
	return apperr.ErrInvalidCredentials
}
