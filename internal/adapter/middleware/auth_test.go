package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lending-ledger-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

type fakeAuthenticator struct {
	principals map[string]*auth.Principal
}

func (f fakeAuthenticator) Authenticate(_ context.Context, header string) (*auth.Principal, error) {
	if p, ok := f.principals[header]; ok {
		return p, nil
	}
	if header == "Bearer broken" {
		return nil, errors.New("user lookup failed")
	}
	return nil, errors.New("unauthorized")
}

func TestRequireAuth(t *testing.T) {
	a := fakeAuthenticator{principals: map[string]*auth.Principal{
		"Bearer good": {UserID: testUserID, Username: "asha"},
	}}

	e := echo.New()
	e.Use(RequireAuth(a))
	e.GET("/api/lending", func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.String(http.StatusOK, p.Username)
	})

	t.Run("accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/lending", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer good")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK || rec.Body.String() != "asha" {
			t.Fatalf("code=%d body=%q", rec.Code, rec.Body.String())
		}
	})

	var bodies []string
	for _, h := range []string{"", "Bearer bad", "Basic Zm9vOmJhcg==", "Bearer broken"} {
		req := httptest.NewRequest(http.MethodGet, "/api/lending", nil)
		if h != "" {
			req.Header.Set(echo.HeaderAuthorization, h)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: want 401, got %d", h, rec.Code)
		}
		bodies = append(bodies, strings.TrimSpace(rec.Body.String()))
	}
	for _, b := range bodies[1:] {
		if b != bodies[0] {
			t.Fatalf("401 bodies differ: %q vs %q", bodies[0], b)
		}
	}
}

func TestPrincipalFrom_Missing(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := PrincipalFrom(c); ok {
		t.Fatal("expected no principal")
	}
	WithPrincipal(c, &auth.Principal{UserID: testUserID})
	if p, ok := PrincipalFrom(c); !ok || p.UserID != testUserID {
		t.Fatalf("got %+v %v", p, ok)
	}
}
