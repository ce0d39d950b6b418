package http

import (
	"errors"
	"net/http"

	"deliveryno/internal/core/domain/model/stock"
	"deliveryno/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeError(c echo.Context, code int, message string) error {
	return c.JSON(code, Error{Code: code, Message: message})
}

// statusFor maps an application error to its HTTP status.
func statusFor(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrTransient):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, stock.ErrItemNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrTransitionIsInvalid),
		errors.Is(err, stock.ErrApprovalPending),
		errors.Is(err, stock.ErrInsufficientStock),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// errorHandler renders errors returned by handlers. Internal failures are
// logged and reported without detail.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := statusFor(err)
	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}
	if code >= http.StatusInternalServerError && code != http.StatusServiceUnavailable {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err)
		message = http.StatusText(code)
	}

	if writeErr := writeError(c, code, message); writeErr != nil {
		s.logger.ErrorContext(c.Request().Context(), "write error response", "error", writeErr)
	}
}
