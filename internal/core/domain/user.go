package domain

import (
	"errors"
	"time"
)

// Roles form a closed set; every stored identity carries exactly one.
const (
	RolePatient   = "patient"
	RoleAmbulance = "ambulance"
	RoleHospital  = "hospital"
	RoleBloodBank = "bloodbank"
	RoleAdmin     = "admin"
)

var validRoles = map[string]struct{}{
	RolePatient:   {},
	RoleAmbulance: {},
	RoleHospital:  {},
	RoleBloodBank: {},
	RoleAdmin:     {},
}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	_, ok := validRoles[role]
	return ok
}

// Authentication and identity errors. The API layer maps these to HTTP
// status codes in one place; token failures all collapse into the same
// generic 401 response so callers cannot probe which step failed.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrForbidden          = errors.New("access denied")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrRoleNotAllowed = errors.New("role not allowed")

	ErrUserNotFound   = errors.New("user not found")
	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already exists")
)

// User models a stored identity. The password hash never serializes to JSON.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe to attach to a request context: credential
// material is dropped, everything else is kept.
func (u *User) Sanitized() *User {
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
