// Package password wraps bcrypt with a configured cost.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const MinLength = 6

var ErrMismatch = errors.New("password mismatch")

type Hasher struct{ cost int }

// NewHasher clamps cost into bcrypt's accepted range; 0 means bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare returns ErrMismatch for a wrong password and the bcrypt error for
// a malformed hash.
func (h *Hasher) Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
