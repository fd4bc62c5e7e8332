package ports

import (
	"context"

	"github.com/resqlink/emergency-directory/internal/core/domain"
)

// BloodBankInput carries the writable fields of a blood bank entry.
type BloodBankInput struct {
	Name      string
	Phone     string
	Hotline   string
	Address   domain.Address
	Position  domain.Position
	Available bool
	Inventory []domain.BloodStock
}

// BloodBankService defines blood bank directory use cases.
type BloodBankService interface {
	List(ctx context.Context) ([]*domain.BloodBank, error)
	Get(ctx context.Context, id string) (*domain.BloodBank, error)
	Create(ctx context.Context, actor Actor, input BloodBankInput) (*domain.BloodBank, error)
	Delete(ctx context.Context, id string) error
	Profile(ctx context.Context, actor Actor) (*domain.BloodBank, error)
	UpdateProfile(ctx context.Context, actor Actor, input BloodBankInput) (*domain.BloodBank, error)
	// UpdateStock upserts the available unit count for one blood group on the
	// caller's own bank and returns the resulting inventory.
	UpdateStock(ctx context.Context, actor Actor, group domain.BloodGroup, available int) ([]domain.BloodStock, error)
}
