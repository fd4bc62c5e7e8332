package domain

import (
	"errors"
	"time"
)

var ErrHistoryNotFound = errors.New("patient history not found")

// EmergencyContact is the person to notify when a patient is admitted.
type EmergencyContact struct {
	Name         string `json:"name" bson:"name"`
	Relationship string `json:"relationship" bson:"relationship"`
	PhoneNumber  string `json:"phone_number" bson:"phone_number"`
}

// Lifestyle captures habit indicators relevant to emergency triage.
type Lifestyle struct {
	Smoking  string `json:"smoking" bson:"smoking"`   // never | former | current
	Alcohol  string `json:"alcohol" bson:"alcohol"`   // never | occasional | regular
	Exercise string `json:"exercise" bson:"exercise"` // never | rarely | weekly | daily
	Diet     string `json:"diet,omitempty" bson:"diet,omitempty"`
}

// PatientHistory is the medical record a patient maintains about themselves.
// One record per patient identity.
type PatientHistory struct {
	ID                string           `json:"id" bson:"_id,omitempty"`
	PatientID         string           `json:"patient_id" bson:"patient_id"`
	FullName          string           `json:"full_name" bson:"full_name"`
	DateOfBirth       time.Time        `json:"date_of_birth" bson:"date_of_birth"`
	Gender            string           `json:"gender" bson:"gender"` // male | female | other
	BloodGroup        BloodGroup       `json:"blood_group" bson:"blood_group"`
	HeightCm          float64          `json:"height_cm" bson:"height_cm"`
	WeightKg          float64          `json:"weight_kg" bson:"weight_kg"`
	Address           string           `json:"address" bson:"address"`
	PhoneNumber       string           `json:"phone_number" bson:"phone_number"`
	EmergencyContact  EmergencyContact `json:"emergency_contact" bson:"emergency_contact"`
	Allergies         []string         `json:"allergies" bson:"allergies"`
	Medications       []string         `json:"medications" bson:"medications"`
	Surgeries         []string         `json:"surgeries" bson:"surgeries"`
	ChronicConditions []string         `json:"chronic_conditions" bson:"chronic_conditions"`
	FamilyHistory     []string         `json:"family_history" bson:"family_history"`
	Lifestyle         Lifestyle        `json:"lifestyle" bson:"lifestyle"`
	CreatedAt         time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" bson:"updated_at"`
}
