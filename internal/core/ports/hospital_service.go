package ports

import (
	"context"

	"github.com/resqlink/emergency-directory/internal/core/domain"
)

// HospitalInput carries the writable fields of a hospital entry.
type HospitalInput struct {
	Name              string
	Phone             string
	Hotline           string
	Email             string
	Address           domain.Address
	Position          domain.Position
	Available         bool
	EmergencyServices bool
	Website           string
	Description       string
	Beds              []domain.BedPool
	Doctors           []domain.Doctor
}

// HospitalService defines hospital directory use cases. Reads are public;
// writes require ownership or the admin role (checked here, with coarse role
// gating already applied at the route).
type HospitalService interface {
	List(ctx context.Context) ([]*domain.Hospital, error)
	Get(ctx context.Context, id string) (*domain.Hospital, error)
	Create(ctx context.Context, actor Actor, input HospitalInput) (*domain.Hospital, error)
	Update(ctx context.Context, actor Actor, id string, input HospitalInput) (*domain.Hospital, error)
	SetAvailability(ctx context.Context, actor Actor, id string, available bool) (*domain.Hospital, error)
	Delete(ctx context.Context, id string) error
	Profile(ctx context.Context, actor Actor) (*domain.Hospital, error)
	UpdateProfile(ctx context.Context, actor Actor, input HospitalInput) (*domain.Hospital, error)
}
