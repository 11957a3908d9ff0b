package user

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"lending-ledger-backend/internal/domain/apperr"
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MinPasswordLen = 6

	// bcrypt refuses longer input
	MaxPasswordBytes = 72
)

// PhonePattern is a 10-digit mobile number starting with 6-9.
var PhonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

func CheckUsername(ve *apperr.ValidationError, username string) {
	n := utf8.RuneCountInString(strings.TrimSpace(username))
	if n < MinUsernameLen || n > MaxUsernameLen {
		ve.Add("username", "must be between 3 and 30 characters")
	}
}

func CheckEmail(ve *apperr.ValidationError, email string) {
	a, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || a.Address != strings.TrimSpace(email) {
		ve.Add("email", "must be a valid email address")
	}
}

func CheckPhone(ve *apperr.ValidationError, phone string) {
	if !PhonePattern.MatchString(phone) {
		ve.Add("phone", "must be a valid 10-digit mobile number")
	}
}

func CheckPassword(ve *apperr.ValidationError, password string) {
	switch {
	case len(password) < MinPasswordLen:
		ve.Add("password", "must be at least 6 characters")
	case len(password) > MaxPasswordBytes:
		ve.Add("password", "must be at most 72 bytes")
	}
}

func CheckStatus(ve *apperr.ValidationError, s Status) {
	if !s.Valid() {
		ve.Add("status", "must be Active or Inactive")
	}
}
