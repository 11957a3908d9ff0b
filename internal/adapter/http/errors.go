package http

import (
	"errors"
	"log/slog"
	"net/http"

	"lending-ledger-backend/internal/domain/apperr"
	"lending-ledger-backend/pkg/accrual"
	"lending-ledger-backend/pkg/sl"

	"github.com/labstack/echo/v4"
)

// ErrorWriter turns usecase errors into responses. With debug set, 500
// bodies carry the underlying error text.
type ErrorWriter struct {
	log   *slog.Logger
	debug bool
}

func NewErrorWriter(log *slog.Logger, debug bool) ErrorWriter {
	if log == nil {
		log = slog.Default()
	}
	return ErrorWriter{log: log, debug: debug}
}

func (w ErrorWriter) write(c echo.Context, err error) error {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ve.Fields})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: apperr.ErrInvalidCredentials.Error()})
	case errors.Is(err, apperr.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	case errors.Is(err, apperr.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrForbidden):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, accrual.ErrInvalidAccrualInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	w.log.ErrorContext(c.Request().Context(), "request failed",
		slog.String("method", c.Request().Method),
		slog.String("path", c.Path()),
		sl.Err(err),
	)
	resp := ErrorResponse{Error: "internal server error"}
	if w.debug {
		resp.Detail = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, resp)
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

// formatErrors lists what the validator rejected; nil when it passed.
func formatErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	return ToFieldErrors(err)
}

func invalid(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
