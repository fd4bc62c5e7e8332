package ports

import (
	"context"

	"github.com/resqlink/emergency-directory/internal/core/domain"
)

// HospitalRepository defines persistence for hospital directory entries.
type HospitalRepository interface {
	Create(ctx context.Context, h *domain.Hospital) (*domain.Hospital, error)
	FindByID(ctx context.Context, id string) (*domain.Hospital, error)
	FindByName(ctx context.Context, name string) (*domain.Hospital, error)
	FindByOwner(ctx context.Context, ownerID string) (*domain.Hospital, error)
	// List returns all hospitals, most recently updated first.
	List(ctx context.Context) ([]*domain.Hospital, error)
	Update(ctx context.Context, h *domain.Hospital) (*domain.Hospital, error)
	Delete(ctx context.Context, id string) error
}
