package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/ports"
)

// BloodBankService implements blood bank directory use cases.
type BloodBankService struct {
	repo   ports.BloodBankRepository
	logger zerolog.Logger
}

func NewBloodBankService(repo ports.BloodBankRepository, logger zerolog.Logger) *BloodBankService {
	return &BloodBankService{repo: repo, logger: logger}
}

func (s *BloodBankService) List(ctx context.Context) ([]*domain.BloodBank, error) {
	return s.repo.List(ctx)
}

func (s *BloodBankService) Get(ctx context.Context, id string) (*domain.BloodBank, error) {
	return s.repo.FindByID(ctx, id)
}

// Create registers a blood bank owned by the caller. A bloodbank-role
// identity owns at most one entry.
func (s *BloodBankService) Create(ctx context.Context, actor ports.Actor, input ports.BloodBankInput) (*domain.BloodBank, error) {
	if err := validateInventory(input.Inventory); err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleBloodBank {
		if _, err := s.repo.FindByOwner(ctx, actor.ID); err == nil {
			return nil, domain.ErrBloodBankExists
		} else if !errors.Is(err, domain.ErrBloodBankNotFound) {
			return nil, err
		}
	}

	now := time.Now().UTC()
	b := &domain.BloodBank{
		OwnerID:   actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyBloodBankInput(b, input)

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("bloodbank", created.Name).Str("owner_id", actor.ID).Msg("blood bank registered")
	return created, nil
}

func (s *BloodBankService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("bloodbank_id", id).Msg("blood bank deleted")
	return nil
}

func (s *BloodBankService) Profile(ctx context.Context, actor ports.Actor) (*domain.BloodBank, error) {
	return s.repo.FindByOwner(ctx, actor.ID)
}

func (s *BloodBankService) UpdateProfile(ctx context.Context, actor ports.Actor, input ports.BloodBankInput) (*domain.BloodBank, error) {
	b, err := s.repo.FindByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := validateInventory(input.Inventory); err != nil {
		return nil, err
	}
	applyBloodBankInput(b, input)
	b.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, b)
}

// UpdateStock upserts the unit count for one blood group on the caller's bank.
func (s *BloodBankService) UpdateStock(ctx context.Context, actor ports.Actor, group domain.BloodGroup, available int) ([]domain.BloodStock, error) {
	if !domain.ValidBloodGroup(group) || available < 0 {
		return nil, domain.ErrInvalidBloodGroup
	}
	b, err := s.repo.FindByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	b.SetStock(group, available)
	b.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		return nil, err
	}
	return updated.Inventory, nil
}

func applyBloodBankInput(b *domain.BloodBank, in ports.BloodBankInput) {
	b.Name = in.Name
	b.Phone = in.Phone
	b.Hotline = in.Hotline
	b.Address = in.Address
	b.Position = in.Position
	b.Available = in.Available
	if in.Inventory != nil {
		b.Inventory = in.Inventory
	}
}

func validateInventory(stocks []domain.BloodStock) error {
	for _, st := range stocks {
		if !domain.ValidBloodGroup(st.Group) || st.Available < 0 {
			return domain.ErrInvalidBloodGroup
		}
	}
	return nil
}
