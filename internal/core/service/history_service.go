package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/ports"
)

// HistoryService implements patient history use cases.
type HistoryService struct {
	repo   ports.HistoryRepository
	logger zerolog.Logger
}

func NewHistoryService(repo ports.HistoryRepository, logger zerolog.Logger) *HistoryService {
	return &HistoryService{repo: repo, logger: logger}
}

// Upsert creates or replaces the caller's history record. The repository
// preserves the original creation timestamp on replace.
func (s *HistoryService) Upsert(ctx context.Context, patientID string, input ports.HistoryInput) (*domain.PatientHistory, error) {
	if !domain.ValidBloodGroup(input.BloodGroup) {
		return nil, domain.ErrInvalidBloodGroup
	}

	now := time.Now().UTC()
	h := &domain.PatientHistory{
		PatientID:         patientID,
		FullName:          input.FullName,
		DateOfBirth:       input.DateOfBirth,
		Gender:            input.Gender,
		BloodGroup:        input.BloodGroup,
		HeightCm:          input.HeightCm,
		WeightKg:          input.WeightKg,
		Address:           input.Address,
		PhoneNumber:       input.PhoneNumber,
		EmergencyContact:  input.EmergencyContact,
		Allergies:         input.Allergies,
		Medications:       input.Medications,
		Surgeries:         input.Surgeries,
		ChronicConditions: input.ChronicConditions,
		FamilyHistory:     input.FamilyHistory,
		Lifestyle:         input.Lifestyle,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	saved, err := s.repo.Upsert(ctx, h)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("patient_id", patientID).Msg("patient history saved")
	return saved, nil
}

func (s *HistoryService) Get(ctx context.Context, patientID string) (*domain.PatientHistory, error) {
	return s.repo.FindByPatient(ctx, patientID)
}
