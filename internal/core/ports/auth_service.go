package ports

import (
	"context"

	"github.com/resqlink/emergency-directory/internal/core/domain"
)

// SignupInput carries everything needed to create an identity.
type SignupInput struct {
	Name     string
	Email    string
	Username string
	Password string
	Role     string
}

// AuthService implements the credential lifecycle: account creation with
// hashing, and login with verification plus token issuance.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
}

// LoginThrottle limits failed login attempts per username. Backed by Redis.
type LoginThrottle interface {
	Blocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
