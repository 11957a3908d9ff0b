package http

import (
	"net/http"

	"lending-ledger-backend/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
)

// Routes groups what Register needs. Idempotency and Metrics may be nil.
type Routes struct {
	Health      *Handler
	Auth        *AuthHandler
	Lending     *LendingHandler
	Users       *UserHandler
	Gate        middleware.Authenticator
	LoginLimit  echo.MiddlewareFunc
	Idempotency echo.MiddlewareFunc
	Metrics     http.Handler
}

func Register(e *echo.Echo, r Routes) {
	e.GET("/health", r.Health.Health)
	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics))
	}

	api := e.Group("/api")

	authG := api.Group("/auth")
	var limited []echo.MiddlewareFunc
	if r.LoginLimit != nil {
		limited = append(limited, r.LoginLimit)
	}
	authG.POST("/register", r.Auth.Register, limited...)
	authG.POST("/login", r.Auth.Login, limited...)
	authG.GET("/verify", r.Auth.Verify)

	requireAuth := middleware.RequireAuth(r.Gate)

	lend := api.Group("/lending", requireAuth)
	var createMW []echo.MiddlewareFunc
	if r.Idempotency != nil {
		createMW = append(createMW, r.Idempotency)
	}
	lend.GET("", r.Lending.List)
	lend.POST("", r.Lending.Create, createMW...)
	lend.GET("/summary", r.Lending.Summary)
	lend.POST("/preview", r.Lending.Preview)
	lend.POST("/download", r.Lending.Download)
	lend.GET("/:id", r.Lending.Get)
	lend.PUT("/:id", r.Lending.Update)
	lend.DELETE("/:id", r.Lending.Delete)

	users := api.Group("/users", requireAuth)
	users.GET("", r.Users.List)
	users.POST("", r.Users.Create)
	users.GET("/:id", r.Users.Get)
	users.PUT("/:id", r.Users.Update)
	users.DELETE("/:id", r.Users.Delete)
}
