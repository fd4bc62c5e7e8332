package ports

import (
	"context"

	"github.com/resqlink/emergency-directory/internal/core/domain"
)

// HistoryRepository defines persistence for patient medical histories.
// Exactly one record exists per patient identity.
type HistoryRepository interface {
	Upsert(ctx context.Context, h *domain.PatientHistory) (*domain.PatientHistory, error)
	FindByPatient(ctx context.Context, patientID string) (*domain.PatientHistory, error)
	DeleteByPatient(ctx context.Context, patientID string) error
}
