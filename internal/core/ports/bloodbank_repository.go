package ports

import (
	"context"

	"github.com/resqlink/emergency-directory/internal/core/domain"
)

// BloodBankRepository defines persistence for blood bank directory entries.
type BloodBankRepository interface {
	Create(ctx context.Context, b *domain.BloodBank) (*domain.BloodBank, error)
	FindByID(ctx context.Context, id string) (*domain.BloodBank, error)
	FindByOwner(ctx context.Context, ownerID string) (*domain.BloodBank, error)
	List(ctx context.Context) ([]*domain.BloodBank, error)
	Update(ctx context.Context, b *domain.BloodBank) (*domain.BloodBank, error)
	Delete(ctx context.Context, id string) error
}
