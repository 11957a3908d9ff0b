package middleware

import (
	"context"
	"net/http"

	"lending-ledger-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

const principalKey = "auth.principal"

// Authenticator resolves an Authorization header value to a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*auth.Principal, error)
}

// RequireAuth rejects every request without an active principal with the
// same 401 body; the reason is never disclosed.
func RequireAuth(a Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := a.Authenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal stored by RequireAuth.
func PrincipalFrom(c echo.Context) (*auth.Principal, bool) {
	p, ok := c.Get(principalKey).(*auth.Principal)
	return p, ok && p != nil
}

// WithPrincipal stores p the way RequireAuth does.
func WithPrincipal(c echo.Context, p *auth.Principal) { c.Set(principalKey, p) }
