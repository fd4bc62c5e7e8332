package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/ports"
)

type stubHistoryRepo struct {
	records map[string]*domain.PatientHistory
}

func newStubHistoryRepo() *stubHistoryRepo {
	return &stubHistoryRepo{records: make(map[string]*domain.PatientHistory)}
}

func (r *stubHistoryRepo) Upsert(_ context.Context, h *domain.PatientHistory) (*domain.PatientHistory, error) {
	copy := *h
	if existing, ok := r.records[h.PatientID]; ok {
		copy.ID = existing.ID
		copy.CreatedAt = existing.CreatedAt
	} else {
		copy.ID = "hist_" + h.PatientID
	}
	r.records[h.PatientID] = &copy
	out := copy
	return &out, nil
}

func (r *stubHistoryRepo) FindByPatient(_ context.Context, patientID string) (*domain.PatientHistory, error) {
	if h, ok := r.records[patientID]; ok {
		copy := *h
		return &copy, nil
	}
	return nil, domain.ErrHistoryNotFound
}

func (r *stubHistoryRepo) DeleteByPatient(_ context.Context, patientID string) error {
	if _, ok := r.records[patientID]; !ok {
		return domain.ErrHistoryNotFound
	}
	delete(r.records, patientID)
	return nil
}

func historyInput() ports.HistoryInput {
	return ports.HistoryInput{
		FullName:    "Jane Doe",
		DateOfBirth: time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
		BloodGroup:  domain.BloodOPos,
		HeightCm:    168,
		WeightKg:    61,
		EmergencyContact: domain.EmergencyContact{
			Name:         "John Doe",
			Relationship: "spouse",
			PhoneNumber:  "0190000000",
		},
		Allergies: []string{"penicillin"},
	}
}

func TestHistoryService_Upsert_Success(t *testing.T) {
	repo := newStubHistoryRepo()
	svc := NewHistoryService(repo, zerolog.Nop())

	saved, err := svc.Upsert(context.Background(), "patient_1", historyInput())
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if saved.PatientID != "patient_1" {
		t.Fatalf("patient id not recorded: %q", saved.PatientID)
	}
	if saved.ID == "" {
		t.Fatalf("expected assigned id")
	}
}

func TestHistoryService_Upsert_InvalidBloodGroup(t *testing.T) {
	svc := NewHistoryService(newStubHistoryRepo(), zerolog.Nop())

	in := historyInput()
	in.BloodGroup = "Q+"
	if _, err := svc.Upsert(context.Background(), "patient_1", in); !errors.Is(err, domain.ErrInvalidBloodGroup) {
		t.Fatalf("expected ErrInvalidBloodGroup, got %v", err)
	}
}

func TestHistoryService_Upsert_ReplacePreservesCreation(t *testing.T) {
	repo := newStubHistoryRepo()
	svc := NewHistoryService(repo, zerolog.Nop())

	first, err := svc.Upsert(context.Background(), "patient_1", historyInput())
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	in := historyInput()
	in.Allergies = []string{"penicillin", "latex"}
	second, err := svc.Upsert(context.Background(), "patient_1", in)
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("replace changed record id: %q vs %q", second.ID, first.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("replace changed creation time")
	}
	if len(second.Allergies) != 2 {
		t.Fatalf("replacement not applied: %+v", second.Allergies)
	}
}

func TestHistoryService_Get_NotFound(t *testing.T) {
	svc := NewHistoryService(newStubHistoryRepo(), zerolog.Nop())
	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, domain.ErrHistoryNotFound) {
		t.Fatalf("expected ErrHistoryNotFound, got %v", err)
	}
}
