// Package token issues and verifies the bearer credentials handed to clients.
//
// Tokens are HS256 JWTs whose subject is the user's public id. They are
// fixed-lifetime and cannot be refreshed; expiry forces a new login.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
}

// Maker signs and parses tokens with a process-wide secret.
type Maker struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewMaker(secret string, ttl time.Duration) *Maker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Maker{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *Maker) TTL() time.Duration { return m.ttl }

// Issue returns a signed token bound to userID.
func (m *Maker) Issue(userID string) (string, error) {
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies signature, algorithm and expiry and returns the subject.
// Every failure wraps ErrInvalidToken.
func (m *Maker) Parse(raw string) (string, error) {
	const op = "token.Parse"
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, ErrInvalidToken, err)
	}
	if !tok.Valid {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", fmt.Errorf("%s: %w: missing subject", op, ErrInvalidToken)
	}
	return claims.Subject, nil
}

// FromHeader extracts the token from an "Authorization: Bearer <token>" value.
func FromHeader(header string) (string, bool) {
	header = strings.TrimSpace(header)
	scheme, tok, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}
