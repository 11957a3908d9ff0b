package http

import (
	"net/http"

	"lending-ledger-backend/internal/adapter/middleware"
	"lending-ledger-backend/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	uc   *user.Usecase
	errs ErrorWriter
}

func NewUserHandler(uc *user.Usecase, errs ErrorWriter) *UserHandler {
	return &UserHandler{uc: uc, errs: errs}
}

// Every field rule lives in the user domain, which reports all violations at once.
type createUserReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Status   string `json:"status"`
	IsAdmin  bool   `json:"isAdmin"`
}

type updateUserReq struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
	Status   *string `json:"status"`
	IsAdmin  *bool   `json:"isAdmin"`
}

type listUsersQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Search    string `query:"search"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

type userResponse struct {
	Message string        `json:"message"`
	User    *user.UserDTO `json:"user"`
}

func (h *UserHandler) List(c echo.Context) error {
	var q listUsersQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	out, err := h.uc.List(c.Request().Context(), user.ListInput(q))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	dto, err := h.uc.Create(c.Request().Context(), user.CreateInput(req))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusCreated, userResponse{Message: "User created successfully", User: dto})
}

func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("id"), user.UpdateInput(req))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusOK, userResponse{Message: "User updated successfully", User: dto})
}

func (h *UserHandler) Delete(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	if err := h.uc.Delete(c.Request().Context(), p.UserID, c.Param("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}
