package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/resqlink/emergency-directory/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"token expired", domain.ErrTokenExpired, http.StatusUnauthorized, "Authentication required"},
		{"token invalid", domain.ErrTokenInvalid, http.StatusUnauthorized, "Authentication required"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "Access denied"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts, try again later"},
		{"email exists", domain.ErrEmailExists, http.StatusConflict, "Email already exists"},
		{"username exists", domain.ErrUsernameExists, http.StatusConflict, "Username already exists"},
		{"hospital exists", domain.ErrHospitalExists, http.StatusConflict, "Hospital already exists"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"hospital not found", domain.ErrHospitalNotFound, http.StatusNotFound, "Hospital not found"},
		{"history not found", domain.ErrHistoryNotFound, http.StatusNotFound, "Patient history not found"},
		{"role not allowed", domain.ErrRoleNotAllowed, http.StatusBadRequest, "Role not allowed"},
		{"bad bed count", domain.ErrInvalidBedCount, http.StatusBadRequest, "Available beds cannot exceed total beds"},
		{"bad blood group", domain.ErrInvalidBloodGroup, http.StatusBadRequest, "Invalid blood group"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if body["success"] != false {
				t.Fatalf("expected success=false, got %v", body["success"])
			}
			if body["message"] != tc.message {
				t.Fatalf("expected message %q, got %v", tc.message, body["message"])
			}
		})
	}
}

func TestErrorHandler_WrappedErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("find owner"), domain.ErrBloodBankNotFound)
	code, body := renderError(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if body["message"] != "Blood bank not found" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if body["message"] != "Invalid request payload" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, body := renderError(t, errors.New("driver: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body["message"] != "Server error" {
		t.Fatalf("internal detail leaked: %v", body["message"])
	}
}
