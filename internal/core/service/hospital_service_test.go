package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/ports"
)

type stubHospitalRepo struct {
	hospitals map[string]*domain.Hospital
	nextID    int
}

func newStubHospitalRepo() *stubHospitalRepo {
	return &stubHospitalRepo{hospitals: make(map[string]*domain.Hospital)}
}

func cloneHospital(h *domain.Hospital) *domain.Hospital {
	if h == nil {
		return nil
	}
	clone := *h
	return &clone
}

func (r *stubHospitalRepo) Create(_ context.Context, h *domain.Hospital) (*domain.Hospital, error) {
	copy := cloneHospital(h)
	r.nextID++
	copy.ID = fmt.Sprintf("hosp_%d", r.nextID)
	r.hospitals[copy.ID] = cloneHospital(copy)
	return copy, nil
}

func (r *stubHospitalRepo) FindByID(_ context.Context, id string) (*domain.Hospital, error) {
	if h, ok := r.hospitals[id]; ok {
		return cloneHospital(h), nil
	}
	return nil, domain.ErrHospitalNotFound
}

func (r *stubHospitalRepo) FindByName(_ context.Context, name string) (*domain.Hospital, error) {
	for _, h := range r.hospitals {
		if h.Name == name {
			return cloneHospital(h), nil
		}
	}
	return nil, domain.ErrHospitalNotFound
}

func (r *stubHospitalRepo) FindByOwner(_ context.Context, ownerID string) (*domain.Hospital, error) {
	for _, h := range r.hospitals {
		if h.OwnerID == ownerID {
			return cloneHospital(h), nil
		}
	}
	return nil, domain.ErrHospitalNotFound
}

func (r *stubHospitalRepo) List(_ context.Context) ([]*domain.Hospital, error) {
	out := make([]*domain.Hospital, 0, len(r.hospitals))
	for _, h := range r.hospitals {
		out = append(out, cloneHospital(h))
	}
	return out, nil
}

func (r *stubHospitalRepo) Update(_ context.Context, h *domain.Hospital) (*domain.Hospital, error) {
	if _, ok := r.hospitals[h.ID]; !ok {
		return nil, domain.ErrHospitalNotFound
	}
	r.hospitals[h.ID] = cloneHospital(h)
	return cloneHospital(h), nil
}

func (r *stubHospitalRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.hospitals[id]; !ok {
		return domain.ErrHospitalNotFound
	}
	delete(r.hospitals, id)
	return nil
}

func hospitalInput(name string) ports.HospitalInput {
	return ports.HospitalInput{
		Name:  name,
		Phone: "0170000000",
		Email: "contact@example.com",
		Address: domain.Address{
			Street: "1 Main St",
			City:   "Springfield",
			State:  "IL",
		},
		Available: true,
		Beds: []domain.BedPool{
			{Type: domain.BedICU, Total: 10, Available: 4},
		},
	}
}

func TestHospitalService_Create_Success(t *testing.T) {
	svc := NewHospitalService(newStubHospitalRepo(), zerolog.Nop())

	actor := ports.Actor{ID: "owner_1", Role: domain.RoleHospital}
	h, err := svc.Create(context.Background(), actor, hospitalInput("General Hospital"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if h.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if h.OwnerID != "owner_1" {
		t.Fatalf("owner not recorded: %q", h.OwnerID)
	}
}

func TestHospitalService_Create_InvalidBeds(t *testing.T) {
	svc := NewHospitalService(newStubHospitalRepo(), zerolog.Nop())

	in := hospitalInput("General Hospital")
	in.Beds = []domain.BedPool{{Type: domain.BedICU, Total: 2, Available: 5}}

	actor := ports.Actor{ID: "owner_1", Role: domain.RoleHospital}
	if _, err := svc.Create(context.Background(), actor, in); !errors.Is(err, domain.ErrInvalidBedCount) {
		t.Fatalf("expected ErrInvalidBedCount, got %v", err)
	}
}

func TestHospitalService_Create_DuplicateName(t *testing.T) {
	repo := newStubHospitalRepo()
	svc := NewHospitalService(repo, zerolog.Nop())

	a := ports.Actor{ID: "owner_1", Role: domain.RoleHospital}
	b := ports.Actor{ID: "owner_2", Role: domain.RoleHospital}

	if _, err := svc.Create(context.Background(), a, hospitalInput("General Hospital")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), b, hospitalInput("General Hospital")); !errors.Is(err, domain.ErrHospitalExists) {
		t.Fatalf("expected ErrHospitalExists, got %v", err)
	}
}

func TestHospitalService_Create_OnePerOwner(t *testing.T) {
	repo := newStubHospitalRepo()
	svc := NewHospitalService(repo, zerolog.Nop())

	actor := ports.Actor{ID: "owner_1", Role: domain.RoleHospital}
	if _, err := svc.Create(context.Background(), actor, hospitalInput("First")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), actor, hospitalInput("Second")); !errors.Is(err, domain.ErrHospitalExists) {
		t.Fatalf("expected ErrHospitalExists, got %v", err)
	}
}

func TestHospitalService_Create_AdminNotLimited(t *testing.T) {
	repo := newStubHospitalRepo()
	svc := NewHospitalService(repo, zerolog.Nop())

	admin := ports.Actor{ID: "admin_1", Role: domain.RoleAdmin}
	if _, err := svc.Create(context.Background(), admin, hospitalInput("First")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, hospitalInput("Second")); err != nil {
		t.Fatalf("admin should not be limited to one entry: %v", err)
	}
}

func TestHospitalService_Update_OwnerOrAdmin(t *testing.T) {
	repo := newStubHospitalRepo()
	svc := NewHospitalService(repo, zerolog.Nop())

	owner := ports.Actor{ID: "owner_1", Role: domain.RoleHospital}
	created, err := svc.Create(context.Background(), owner, hospitalInput("General Hospital"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stranger := ports.Actor{ID: "owner_2", Role: domain.RoleHospital}
	if _, err := svc.Update(context.Background(), stranger, created.ID, hospitalInput("Renamed")); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	admin := ports.Actor{ID: "admin_1", Role: domain.RoleAdmin}
	updated, err := svc.Update(context.Background(), admin, created.ID, hospitalInput("Renamed"))
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
}

func TestHospitalService_SetAvailability(t *testing.T) {
	repo := newStubHospitalRepo()
	svc := NewHospitalService(repo, zerolog.Nop())

	owner := ports.Actor{ID: "owner_1", Role: domain.RoleHospital}
	created, err := svc.Create(context.Background(), owner, hospitalInput("General Hospital"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.SetAvailability(context.Background(), owner, created.ID, false)
	if err != nil {
		t.Fatalf("set availability failed: %v", err)
	}
	if updated.Available {
		t.Fatalf("expected unavailable")
	}
	if updated.Name != "General Hospital" {
		t.Fatalf("unrelated field changed: %q", updated.Name)
	}
}

func TestHospitalService_Profile(t *testing.T) {
	repo := newStubHospitalRepo()
	svc := NewHospitalService(repo, zerolog.Nop())

	owner := ports.Actor{ID: "owner_1", Role: domain.RoleHospital}
	if _, err := svc.Profile(context.Background(), owner); !errors.Is(err, domain.ErrHospitalNotFound) {
		t.Fatalf("expected ErrHospitalNotFound, got %v", err)
	}

	if _, err := svc.Create(context.Background(), owner, hospitalInput("General Hospital")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	profile, err := svc.Profile(context.Background(), owner)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if profile.Name != "General Hospital" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}
