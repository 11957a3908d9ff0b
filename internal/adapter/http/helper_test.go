package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"lending-ledger-backend/internal/adapter/middleware"
	"lending-ledger-backend/internal/domain/lending"
	"lending-ledger-backend/internal/domain/uow"
	"lending-ledger-backend/internal/domain/user"
	"lending-ledger-backend/internal/testutil/recordmock"
	"lending-ledger-backend/internal/testutil/uowmock"
	"lending-ledger-backend/internal/testutil/usermock"
	"lending-ledger-backend/internal/usecase/auth"
	lendingUC "lending-ledger-backend/internal/usecase/lending"
	userUC "lending-ledger-backend/internal/usecase/user"
	"lending-ledger-backend/pkg/password"
	"lending-ledger-backend/pkg/token"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret = "http-test-secret-0123456789"
	operatorID = "0123456789abcdef0123456789abcdef"
)

var testNow = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// recordStore is a map-backed recordmock; List returns insertion order.
type recordStore struct {
	byID  map[string]*lending.Record
	order []string
}

func newRecordStore() *recordStore { return &recordStore{byID: map[string]*lending.Record{}} }

func (s *recordStore) put(r *lending.Record) {
	if _, ok := s.byID[r.RecordID]; !ok {
		s.order = append(s.order, r.RecordID)
	}
	cp := *r
	s.byID[r.RecordID] = &cp
}

func (s *recordStore) repo() *recordmock.Repo {
	get := func(_ context.Context, id string) (*lending.Record, error) {
		r, ok := s.byID[id]
		if !ok {
			return nil, lending.ErrNotFound
		}
		cp := *r
		return &cp, nil
	}
	return &recordmock.Repo{
		CreateFn: func(_ context.Context, r *lending.Record) error {
			r.CreatedAt, r.UpdatedAt = testNow, testNow
			s.put(r)
			return nil
		},
		SaveFn: func(_ context.Context, r *lending.Record) error {
			s.put(r)
			return nil
		},
		GetByRecordIDFn:          get,
		GetByRecordIDForUpdateFn: get,
		DeleteByRecordIDFn: func(_ context.Context, id string) error {
			if _, ok := s.byID[id]; !ok {
				return lending.ErrNotFound
			}
			delete(s.byID, id)
			return nil
		},
		ListFn: func(_ context.Context, f lending.Filter, p lending.Page) ([]lending.Record, int64, error) {
			var out []lending.Record
			for _, id := range s.order {
				if r, ok := s.byID[id]; ok && (f.Status == "" || r.Status == f.Status) {
					out = append(out, *r)
				}
			}
			total := int64(len(out))
			lo := p.Offset()
			if lo > len(out) {
				lo = len(out)
			}
			hi := lo + p.Size
			if hi > len(out) {
				hi = len(out)
			}
			return out[lo:hi], total, nil
		},
		FindByRecordIDsFn: func(_ context.Context, ids []string) ([]lending.Record, error) {
			var out []lending.Record
			for _, id := range ids {
				if r, ok := s.byID[id]; ok {
					out = append(out, *r)
				}
			}
			return out, nil
		},
		SummaryFn: func(_ context.Context, now time.Time) (*lending.Summary, error) {
			sum := &lending.Summary{}
			for _, r := range s.byID {
				sum.TotalRecords++
				if r.Status == lending.StatusCompleted {
					sum.CompletedRecords++
					continue
				}
				if r.Status == lending.StatusActive {
					sum.ActiveRecords++
				} else {
					sum.OverdueRecords++
				}
				sum.TotalAmountLended = sum.TotalAmountLended.Add(r.Amount)
				sum.TotalInterestExpected = sum.TotalInterestExpected.Add(r.Interest)
			}
			return sum, nil
		},
	}
}

// userStore is a map-backed usermock.
type userStore struct{ byID map[string]*user.User }

func newUserStore(users ...*user.User) *userStore {
	s := &userStore{byID: map[string]*user.User{}}
	for _, u := range users {
		s.byID[u.UserID] = u
	}
	return s
}

func (s *userStore) repo() *usermock.Repo {
	return &usermock.Repo{
		CreateFn: func(_ context.Context, u *user.User) error {
			u.CreatedAt, u.UpdatedAt = testNow, testNow
			s.byID[u.UserID] = u
			return nil
		},
		SaveFn: func(_ context.Context, u *user.User) error {
			s.byID[u.UserID] = u
			return nil
		},
		GetByUserIDFn: func(_ context.Context, id string) (*user.User, error) {
			if u, ok := s.byID[id]; ok {
				cp := *u
				return &cp, nil
			}
			return nil, user.ErrNotFound
		},
		GetByEmailFn: func(_ context.Context, email string) (*user.User, error) {
			for _, u := range s.byID {
				if u.Email == user.NormalizeEmail(email) {
					cp := *u
					return &cp, nil
				}
			}
			return nil, user.ErrNotFound
		},
		FindConflictFn: func(_ context.Context, username, email, phone, exclude string) (*user.User, error) {
			for _, u := range s.byID {
				if u.UserID == exclude {
					continue
				}
				if (username != "" && u.Username == username) ||
					(email != "" && u.Email == user.NormalizeEmail(email)) ||
					(phone != "" && u.Phone == phone) {
					return u, nil
				}
			}
			return nil, user.ErrNotFound
		},
		DeleteByUserIDFn: func(_ context.Context, id string) error {
			if _, ok := s.byID[id]; !ok {
				return user.ErrNotFound
			}
			delete(s.byID, id)
			return nil
		},
		ListFn: func(_ context.Context, _ user.Filter, p user.Page) ([]user.User, int64, error) {
			var out []user.User
			for _, u := range s.byID {
				out = append(out, *u)
			}
			sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
			return out, int64(len(out)), nil
		},
	}
}

type testApp struct {
	e       *echo.Echo
	records *recordStore
	users   *userStore
	tokens  *token.Maker
	hasher  *password.Hasher
}

type appOption func(*Routes)

// newTestApp wires real usecases over the in-memory stores behind the
// production router. The seeded operator can sign in with "secret123".
func newTestApp(t *testing.T, opts ...appOption) *testApp {
	t.Helper()
	hasher := password.NewHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatal(err)
	}
	operator := &user.User{
		UserID:       operatorID,
		Username:     "operator",
		Email:        "operator@example.com",
		Phone:        "9876543210",
		PasswordHash: hash,
		Status:       user.StatusActive,
		IsAdmin:      true,
	}

	records := newRecordStore()
	users := newUserStore(operator)
	recRepo, userRepo := records.repo(), users.repo()
	tx := uowmock.Passthrough(uow.Repos{Records: recRepo, Users: userRepo})
	tokens := token.NewMaker(testSecret, time.Hour)

	userSvc := userUC.NewUsecase(userRepo, tx, hasher)
	authSvc, err := auth.NewUsecase(userRepo, userSvc, tokens, hasher)
	if err != nil {
		t.Fatal(err)
	}
	lendSvc := lendingUC.NewUsecase(recRepo, tx, lendingUC.WithClock(func() time.Time { return testNow }))

	errs := NewErrorWriter(nil, true)
	routes := Routes{
		Health:  NewHandler(nil),
		Auth:    NewAuthHandler(authSvc, errs),
		Lending: NewLendingHandler(lendSvc, errs),
		Users:   NewUserHandler(userSvc, errs),
		Gate:    authSvc,
	}
	for _, o := range opts {
		o(&routes)
	}

	e := newEchoWithValidator()
	Register(e, routes)
	return &testApp{e: e, records: records, users: users, tokens: tokens, hasher: hasher}
}

func (a *testApp) bearer(t *testing.T, userID string) string {
	t.Helper()
	tok, err := a.tokens.Issue(userID)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + tok
}

// do sends a request; body may be nil, a string, or any JSON-encodable value.
func (a *testApp) do(t *testing.T, method, path string, body any, authz string) *httptest.ResponseRecorder {
	t.Helper()
	hdr := map[string]string{}
	if authz != "" {
		hdr[echo.HeaderAuthorization] = authz
	}
	return a.doWithHeaders(t, method, path, body, hdr)
}

func (a *testApp) doWithHeaders(t *testing.T, method, path string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		r = mustJSON(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
}

func hasField(details []FieldError, field string) bool {
	for _, d := range details {
		if d.Field == field {
			return true
		}
	}
	return false
}

// compile-time check that the gate satisfies the middleware contract
var _ middleware.Authenticator = (*auth.Usecase)(nil)
