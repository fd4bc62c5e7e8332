package ports

import (
	"context"
	"time"

	"github.com/resqlink/emergency-directory/internal/core/domain"
)

// HistoryInput carries the writable fields of a patient history record.
type HistoryInput struct {
	FullName          string
	DateOfBirth       time.Time
	Gender            string
	BloodGroup        domain.BloodGroup
	HeightCm          float64
	WeightKg          float64
	Address           string
	PhoneNumber       string
	EmergencyContact  domain.EmergencyContact
	Allergies         []string
	Medications       []string
	Surgeries         []string
	ChronicConditions []string
	FamilyHistory     []string
	Lifestyle         domain.Lifestyle
}

// HistoryService defines patient history use cases. Patients write their own
// record; responders (hospital, ambulance) and admins read by patient id,
// gated at the route.
type HistoryService interface {
	Upsert(ctx context.Context, patientID string, input HistoryInput) (*domain.PatientHistory, error)
	Get(ctx context.Context, patientID string) (*domain.PatientHistory, error)
}
