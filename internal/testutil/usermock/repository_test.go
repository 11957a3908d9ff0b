package usermock

import (
	"context"
	"errors"
	"testing"

	domain "lending-ledger-backend/internal/domain/user"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if err := m.Create(ctx, &domain.User{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if _, err := m.GetByUserID(ctx, "u"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByUserID default: %v", err)
	}
	if _, err := m.GetByEmail(ctx, "a@b.c"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByEmail default: %v", err)
	}
	if _, err := m.FindConflict(ctx, "u", "e", "p", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FindConflict default: %v", err)
	}
	out, total, err := m.List(ctx, domain.Filter{}, domain.Page{})
	if err != nil || total != 0 || len(out) != 0 {
		t.Fatalf("List default: %v %d %v", out, total, err)
	}
}

func TestRepo_FindConflictForwardsArgs(t *testing.T) {
	want := &domain.User{UserID: "x"}
	m := &Repo{
		FindConflictFn: func(_ context.Context, username, email, phone, exclude string) (*domain.User, error) {
			if username != "asha" || email != "a@x.io" || phone != "9876543210" || exclude != "me" {
				t.Fatalf("args mismatch: %s %s %s %s", username, email, phone, exclude)
			}
			return want, nil
		},
	}
	got, err := m.FindConflict(context.Background(), "asha", "a@x.io", "9876543210", "me")
	if err != nil || got != want {
		t.Fatalf("FindConflict: %v %v", got, err)
	}
}
