package http

import (
	"net/http"

	"lending-ledger-backend/internal/usecase/auth"
	"lending-ledger-backend/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc   *auth.Usecase
	errs ErrorWriter
}

func NewAuthHandler(uc *auth.Usecase, errs ErrorWriter) *AuthHandler {
	return &AuthHandler{uc: uc, errs: errs}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Message string `json:"message"`
	*auth.Session
}

type verifyResponse struct {
	Message string        `json:"message"`
	User    *user.UserDTO `json:"user"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	s, err := h.uc.Register(c.Request().Context(), auth.RegisterInput(req))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusCreated, sessionResponse{Message: "User registered successfully", Session: s})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	s, err := h.uc.Login(c.Request().Context(), auth.LoginInput(req))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusOK, sessionResponse{Message: "Login successful", Session: s})
}

func (h *AuthHandler) Verify(c echo.Context) error {
	u, err := h.uc.Verify(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusOK, verifyResponse{Message: "Token valid", User: u})
}
