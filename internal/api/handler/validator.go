package handler

import (
	"errors"
	"fmt"
	"net/http"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo's Validator interface and
// registers the custom rules the request schemas rely on.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("strongpassword", strongPassword)
	return &Validator{validate: v}
}

// Validate runs struct validation and converts the first failure into a 400
// the central error handler can render.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Invalid value for field '%s'", fe.Field()))
	}
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
}

// strongPassword requires at least 8 characters including an uppercase
// letter, a lowercase letter, a digit, and a symbol.
func strongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
