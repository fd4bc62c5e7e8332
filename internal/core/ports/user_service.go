package ports

import (
	"context"

	"github.com/resqlink/emergency-directory/internal/core/domain"
)

// Actor identifies the authenticated caller for object-level checks that
// route-level role gates cannot express (e.g. "self or admin").
type Actor struct {
	ID   string
	Role string
}

// UpdateUserInput carries a partial identity update. Empty fields are left
// untouched; a non-empty Password triggers a re-hash.
type UpdateUserInput struct {
	Actor    Actor
	TargetID string
	Name     string
	Email    string
	Password string
}

// UserService defines identity directory operations. Role-gated listing is
// enforced at the route; self-or-admin rules are enforced here.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
