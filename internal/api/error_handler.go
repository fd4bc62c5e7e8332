package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/resqlink/emergency-directory/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to deterministic status codes, logs unexpected errors without
// leaking details to the client, and renders the
// {"success":false,"message":...} envelope everywhere.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors: bind failures, 404 from the router, and the
	// middleware rejections raised as echo.HTTPError.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	// 401: the client should re-authenticate. The token failures share one
	// message with the middleware's generic rejection.
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrIdentityNotFound):
		return http.StatusUnauthorized, "Authentication required"

	// 403: authenticated but not permitted.
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access denied"

	// 429
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many login attempts, try again later"

	// 409: uniqueness conflicts.
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, "Email already exists"
	case errors.Is(err, domain.ErrUsernameExists):
		return http.StatusConflict, "Username already exists"
	case errors.Is(err, domain.ErrHospitalExists):
		return http.StatusConflict, "Hospital already exists"
	case errors.Is(err, domain.ErrBloodBankExists):
		return http.StatusConflict, "Blood bank already exists"

	// 404
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrHospitalNotFound):
		return http.StatusNotFound, "Hospital not found"
	case errors.Is(err, domain.ErrBloodBankNotFound):
		return http.StatusNotFound, "Blood bank not found"
	case errors.Is(err, domain.ErrHistoryNotFound):
		return http.StatusNotFound, "Patient history not found"

	// 400: semantic validation the binder cannot catch.
	case errors.Is(err, domain.ErrRoleNotAllowed):
		return http.StatusBadRequest, "Role not allowed"
	case errors.Is(err, domain.ErrInvalidBedCount):
		return http.StatusBadRequest, "Available beds cannot exceed total beds"
	case errors.Is(err, domain.ErrInvalidBloodGroup):
		return http.StatusBadRequest, "Invalid blood group"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Server error"
}
