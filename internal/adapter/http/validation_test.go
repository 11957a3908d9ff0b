package http

import (
	"errors"
	"strings"
	"testing"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestHex32Validation(t *testing.T) {
	type P struct {
		RecordID string `json:"recordId" validate:"hex32"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{RecordID: strings.Repeat("a", 32)}); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}
	for _, s := range []string{
		"",
		strings.Repeat("A", 32),
		"deadbeef",
		strings.Repeat("g", 32),
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x",
	} {
		err := cv.Validate(P{RecordID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "recordId", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestHex32Validation_Dive(t *testing.T) {
	type P struct {
		IDs []string `json:"recordIds" validate:"dive,hex32"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{}); err != nil {
		t.Fatalf("empty list should pass the tag, got %v", err)
	}
	err := cv.Validate(P{IDs: []string{strings.Repeat("a", 32), "nope"}})
	if err == nil {
		t.Fatal("expected error for malformed element")
	}
	fe := ToFieldErrors(err)
	if len(fe) != 1 || !containsFieldMsg(fe, "recordIds[1]", "32-char lowercase hex") {
		t.Fatalf("unexpected mapping: %+v", fe)
	}
}

func TestDateAndBoundsMapping(t *testing.T) {
	type P struct {
		Start string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
		Name  string `json:"name"       validate:"required,max=5"`
		Email string `json:"email"      validate:"omitempty,email"`
		Min   int    `json:"min"        validate:"gte=10"`
		Max   int    `json:"max"        validate:"lte=5"`
		Kind  string `json:"kind"       validate:"oneof=json csv"`
		Tags  []int  `json:"tags"       validate:"min=1"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Start: "2025-02-30", Email: "nope", Min: 9, Max: 6, Kind: "xml"})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	fe := ToFieldErrors(err)
	checks := []struct{ field, msg string }{
		{"startDate", "YYYY-MM-DD"},
		{"name", "is required"},
		{"email", "valid email"},
		{"min", "greater than or equal to 10"},
		{"max", "less than or equal to 5"},
		{"kind", "one of json csv"},
		{"tags", "at least 1 items"},
	}
	for _, c := range checks {
		if !containsFieldMsg(fe, c.field, c.msg) {
			t.Fatalf("missing %q for %s: %+v", c.msg, c.field, fe)
		}
	}

	err = cv.Validate(P{Name: "toolong", Min: 10, Kind: "csv", Tags: []int{1}})
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "name", "at most 5 characters") {
		t.Fatalf("string max mapping: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
