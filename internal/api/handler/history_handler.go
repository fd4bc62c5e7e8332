package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/ports"
)

const dateOfBirthLayout = "2006-01-02"

type HistoryHandler struct {
	histories ports.HistoryService
}

func NewHistoryHandler(histories ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{histories: histories}
}

type emergencyContactRequest struct {
	Name         string `json:"name" validate:"required"`
	Relationship string `json:"relationship" validate:"required"`
	PhoneNumber  string `json:"phone_number" validate:"required,numeric,len=10"`
}

type lifestyleRequest struct {
	Smoking  string `json:"smoking" validate:"omitempty,oneof=never former current"`
	Alcohol  string `json:"alcohol" validate:"omitempty,oneof=never occasional regular"`
	Exercise string `json:"exercise" validate:"omitempty,oneof=never rarely weekly daily"`
	Diet     string `json:"diet" validate:"omitempty,max=100"`
}

type historyRequest struct {
	FullName          string                  `json:"full_name" validate:"required,max=100"`
	DateOfBirth       string                  `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender            string                  `json:"gender" validate:"required,oneof=male female other"`
	BloodGroup        string                  `json:"blood_group" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	HeightCm          float64                 `json:"height_cm" validate:"omitempty,gt=0,lt=300"`
	WeightKg          float64                 `json:"weight_kg" validate:"omitempty,gt=0,lt=700"`
	Address           string                  `json:"address" validate:"omitempty,max=300"`
	PhoneNumber       string                  `json:"phone_number" validate:"omitempty,numeric,len=10"`
	EmergencyContact  emergencyContactRequest `json:"emergency_contact" validate:"required"`
	Allergies         []string                `json:"allergies"`
	Medications       []string                `json:"medications"`
	Surgeries         []string                `json:"surgeries"`
	ChronicConditions []string                `json:"chronic_conditions"`
	FamilyHistory     []string                `json:"family_history"`
	Lifestyle         lifestyleRequest        `json:"lifestyle"`
}

func (r historyRequest) toInput() (ports.HistoryInput, error) {
	dob, err := time.Parse(dateOfBirthLayout, r.DateOfBirth)
	if err != nil {
		return ports.HistoryInput{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid date of birth")
	}
	return ports.HistoryInput{
		FullName:    r.FullName,
		DateOfBirth: dob,
		Gender:      r.Gender,
		BloodGroup:  domain.BloodGroup(r.BloodGroup),
		HeightCm:    r.HeightCm,
		WeightKg:    r.WeightKg,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
		EmergencyContact: domain.EmergencyContact{
			Name:         r.EmergencyContact.Name,
			Relationship: r.EmergencyContact.Relationship,
			PhoneNumber:  r.EmergencyContact.PhoneNumber,
		},
		Allergies:         r.Allergies,
		Medications:       r.Medications,
		Surgeries:         r.Surgeries,
		ChronicConditions: r.ChronicConditions,
		FamilyHistory:     r.FamilyHistory,
		Lifestyle: domain.Lifestyle{
			Smoking:  r.Lifestyle.Smoking,
			Alcohol:  r.Lifestyle.Alcohol,
			Exercise: r.Lifestyle.Exercise,
			Diet:     r.Lifestyle.Diet,
		},
	}, nil
}

// UpsertMine creates or replaces the caller's own medical record.
//
//	@Summary		Upsert own patient history
//	@Tags			patient-history
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		historyRequest	true	"medical record"
//	@Success		200		{object}	dataResponse
//	@Failure		400		{object}	messageResponse
//	@Router			/api/patient-history/me [put]
func (h *HistoryHandler) UpsertMine(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req historyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	history, err := h.histories.Upsert(c.Request().Context(), actor.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: history})
}

// GetMine returns the caller's own medical record.
//
//	@Summary		Own patient history
//	@Tags			patient-history
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dataResponse
//	@Failure		404	{object}	messageResponse
//	@Router			/api/patient-history/me [get]
func (h *HistoryHandler) GetMine(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	history, err := h.histories.Get(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: history})
}

// GetByPatient returns a patient's medical record for responders. The route
// restricts this to hospital, ambulance, and admin roles.
//
//	@Summary		Patient history by patient id
//	@Tags			patient-history
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"patient id"
//	@Success		200	{object}	dataResponse
//	@Failure		403	{object}	messageResponse
//	@Failure		404	{object}	messageResponse
//	@Router			/api/patient-history/{id} [get]
func (h *HistoryHandler) GetByPatient(c echo.Context) error {
	history, err := h.histories.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: history})
}
