package ports

import (
	"context"

	"github.com/resqlink/emergency-directory/internal/core/domain"
)

// UserRepository defines persistence for identities. Usernames and emails
// are stored lowercased; lookups expect pre-lowercased input.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
