package domain

import (
	"errors"
	"time"
)

// BedType classifies a hospital bed pool.
type BedType string

const (
	BedICU       BedType = "ICU"
	BedGeneral   BedType = "General"
	BedEmergency BedType = "Emergency"
	BedPediatric BedType = "Pediatric"
	BedMaternity BedType = "Maternity"
)

// Specialization classifies a doctor's field of practice.
type Specialization string

const (
	SpecGeneral     Specialization = "General"
	SpecCardiology  Specialization = "Cardiology"
	SpecNeurology   Specialization = "Neurology"
	SpecOrthopedics Specialization = "Orthopedics"
	SpecPediatrics  Specialization = "Pediatrics"
	SpecGynecology  Specialization = "Gynecology"
	SpecEmergency   Specialization = "Emergency"
)

var ErrHospitalNotFound = errors.New("hospital not found")
var ErrHospitalExists = errors.New("hospital already exists")
var ErrInvalidBedCount = errors.New("available beds cannot exceed total beds")

// Position is a geographic point shown on the directory map.
type Position struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Address is a structured street address.
type Address struct {
	Street string `json:"street" bson:"street"`
	City   string `json:"city" bson:"city"`
	State  string `json:"state" bson:"state"`
}

// BedPool tracks capacity for one bed type.
type BedPool struct {
	Type      BedType `json:"type" bson:"type"`
	Total     int     `json:"total" bson:"total"`
	Available int     `json:"available" bson:"available"`
}

// Valid reports whether the pool's counters are coherent.
func (b BedPool) Valid() bool {
	return b.Total >= 0 && b.Available >= 0 && b.Available <= b.Total
}

// Doctor is a practitioner listed under a hospital.
type Doctor struct {
	Name           string         `json:"name" bson:"name"`
	Specialization Specialization `json:"specialization" bson:"specialization"`
	Available      bool           `json:"available" bson:"available"`
}

// Hospital is a directory entry owned by an identity with the hospital role.
type Hospital struct {
	ID                string    `json:"id" bson:"_id,omitempty"`
	OwnerID           string    `json:"owner_id" bson:"owner_id"`
	Name              string    `json:"name" bson:"name"`
	Phone             string    `json:"phone" bson:"phone"`
	Hotline           string    `json:"hotline" bson:"hotline"`
	Email             string    `json:"email" bson:"email"`
	Address           Address   `json:"address" bson:"address"`
	Position          Position  `json:"position" bson:"position"`
	Available         bool      `json:"available" bson:"available"`
	EmergencyServices bool      `json:"emergency_services" bson:"emergency_services"`
	Website           string    `json:"website,omitempty" bson:"website,omitempty"`
	Description       string    `json:"description,omitempty" bson:"description,omitempty"`
	Beds              []BedPool `json:"beds" bson:"beds"`
	Doctors           []Doctor  `json:"doctors" bson:"doctors"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}
