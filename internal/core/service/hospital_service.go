package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/ports"
)

// HospitalService implements hospital directory use cases.
type HospitalService struct {
	repo   ports.HospitalRepository
	logger zerolog.Logger
}

func NewHospitalService(repo ports.HospitalRepository, logger zerolog.Logger) *HospitalService {
	return &HospitalService{repo: repo, logger: logger}
}

func (s *HospitalService) List(ctx context.Context) ([]*domain.Hospital, error) {
	return s.repo.List(ctx)
}

func (s *HospitalService) Get(ctx context.Context, id string) (*domain.Hospital, error) {
	return s.repo.FindByID(ctx, id)
}

// Create registers a hospital entry owned by the caller. Hospital names are
// unique across the directory, and a hospital-role identity owns at most one
// entry.
func (s *HospitalService) Create(ctx context.Context, actor ports.Actor, input ports.HospitalInput) (*domain.Hospital, error) {
	if err := validateBeds(input.Beds); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByName(ctx, input.Name); err == nil {
		return nil, domain.ErrHospitalExists
	} else if !errors.Is(err, domain.ErrHospitalNotFound) {
		return nil, err
	}
	if actor.Role == domain.RoleHospital {
		if _, err := s.repo.FindByOwner(ctx, actor.ID); err == nil {
			return nil, domain.ErrHospitalExists
		} else if !errors.Is(err, domain.ErrHospitalNotFound) {
			return nil, err
		}
	}

	now := time.Now().UTC()
	h := &domain.Hospital{
		OwnerID:   actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyHospitalInput(h, input)

	created, err := s.repo.Create(ctx, h)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("hospital", created.Name).Str("owner_id", actor.ID).Msg("hospital registered")
	return created, nil
}

func (s *HospitalService) Update(ctx context.Context, actor ports.Actor, id string, input ports.HospitalInput) (*domain.Hospital, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != actor.ID && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if err := validateBeds(input.Beds); err != nil {
		return nil, err
	}
	if input.Name != h.Name {
		if _, err := s.repo.FindByName(ctx, input.Name); err == nil {
			return nil, domain.ErrHospitalExists
		} else if !errors.Is(err, domain.ErrHospitalNotFound) {
			return nil, err
		}
	}

	applyHospitalInput(h, input)
	h.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, h)
}

func (s *HospitalService) SetAvailability(ctx context.Context, actor ports.Actor, id string, available bool) (*domain.Hospital, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != actor.ID && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	h.Available = available
	h.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, h)
}

func (s *HospitalService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("hospital_id", id).Msg("hospital deleted")
	return nil
}

// Profile returns the entry owned by the authenticated hospital identity.
func (s *HospitalService) Profile(ctx context.Context, actor ports.Actor) (*domain.Hospital, error) {
	return s.repo.FindByOwner(ctx, actor.ID)
}

func (s *HospitalService) UpdateProfile(ctx context.Context, actor ports.Actor, input ports.HospitalInput) (*domain.Hospital, error) {
	h, err := s.repo.FindByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, actor, h.ID, input)
}

func applyHospitalInput(h *domain.Hospital, in ports.HospitalInput) {
	h.Name = in.Name
	h.Phone = in.Phone
	h.Hotline = in.Hotline
	h.Email = in.Email
	h.Address = in.Address
	h.Position = in.Position
	h.Available = in.Available
	h.EmergencyServices = in.EmergencyServices
	h.Website = in.Website
	h.Description = in.Description
	h.Beds = in.Beds
	h.Doctors = in.Doctors
}

func validateBeds(beds []domain.BedPool) error {
	for _, b := range beds {
		if !b.Valid() {
			return domain.ErrInvalidBedCount
		}
	}
	return nil
}
