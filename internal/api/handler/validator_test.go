package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

type passwordProbe struct {
	Password string `validate:"required,strongpassword"`
}

func TestValidator_StrongPassword(t *testing.T) {
	v := NewValidator()

	valid := []string{
		"Str0ng!pass",
		"Aa1!aaaa",
		"pA55w0rd#x",
	}
	for _, p := range valid {
		if err := v.Validate(&passwordProbe{Password: p}); err != nil {
			t.Fatalf("expected %q to pass: %v", p, err)
		}
	}

	invalid := []string{
		"Sh0rt!a",     // too short
		"alllower1!",  // no uppercase
		"ALLUPPER1!",  // no lowercase
		"NoDigits!!a", // no digit
		"NoSymbol1a",  // no symbol
	}
	for _, p := range invalid {
		err := v.Validate(&passwordProbe{Password: p})
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %v", p, err)
		}
	}
}

func TestValidator_ReportsFirstField(t *testing.T) {
	v := NewValidator()

	type form struct {
		Email string `validate:"required,email"`
	}
	err := v.Validate(&form{Email: "not-an-email"})
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", he.Code)
	}
	if msg, ok := he.Message.(string); !ok || msg != "Invalid value for field 'Email'" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}
