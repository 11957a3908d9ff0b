// Package apperr is the error taxonomy shared by every domain.
// Domain packages wrap these sentinels; the HTTP edge classifies with errors.Is/As.
package apperr

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated field, not only the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a violation.
func (e *ValidationError) Add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// OrNil returns e when it holds violations and nil otherwise.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Merge reports first ahead of the violations carried by err. Later
// violations of a field already named in first are dropped. Errors other
// than *ValidationError pass through untouched.
func Merge(first []FieldError, err error) error {
	if len(first) == 0 {
		return err
	}
	var ve *ValidationError
	if err != nil && !errors.As(err, &ve) {
		return err
	}
	out := &ValidationError{Fields: append([]FieldError(nil), first...)}
	if ve == nil {
		return out
	}
	seen := make(map[string]bool, len(first))
	for _, f := range first {
		seen[f.Field] = true
	}
	for _, f := range ve.Fields {
		if !seen[f.Field] {
			out.Fields = append(out.Fields, f)
		}
	}
	return out
}
