package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resqlink/emergency-directory/internal/api/metrics"
	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/ports"
)

type HospitalHandler struct {
	hospitals ports.HospitalService
}

func NewHospitalHandler(hospitals ports.HospitalService) *HospitalHandler {
	return &HospitalHandler{hospitals: hospitals}
}

type addressRequest struct {
	Street string `json:"street" validate:"required"`
	City   string `json:"city" validate:"required"`
	State  string `json:"state" validate:"required"`
}

type positionRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

type bedPoolRequest struct {
	Type      string `json:"type" validate:"required,oneof=ICU General Emergency Pediatric Maternity"`
	Total     int    `json:"total" validate:"min=0"`
	Available int    `json:"available" validate:"min=0"`
}

type doctorRequest struct {
	Name           string `json:"name" validate:"required"`
	Specialization string `json:"specialization" validate:"required,oneof=General Cardiology Neurology Orthopedics Pediatrics Gynecology Emergency"`
	Available      bool   `json:"available"`
}

type hospitalRequest struct {
	Name              string           `json:"name" validate:"required,max=150"`
	Phone             string           `json:"phone" validate:"required,numeric,len=10"`
	Hotline           string           `json:"hotline" validate:"omitempty,numeric,len=10"`
	Email             string           `json:"email" validate:"required,email"`
	Address           addressRequest   `json:"address" validate:"required"`
	Position          positionRequest  `json:"position"`
	Available         bool             `json:"available"`
	EmergencyServices bool             `json:"emergency_services"`
	Website           string           `json:"website" validate:"omitempty,url"`
	Description       string           `json:"description" validate:"omitempty,max=500"`
	Beds              []bedPoolRequest `json:"beds" validate:"dive"`
	Doctors           []doctorRequest  `json:"doctors" validate:"dive"`
}

type availabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

func (r hospitalRequest) toInput() ports.HospitalInput {
	input := ports.HospitalInput{
		Name:    r.Name,
		Phone:   r.Phone,
		Hotline: r.Hotline,
		Email:   r.Email,
		Address: domain.Address{
			Street: r.Address.Street,
			City:   r.Address.City,
			State:  r.Address.State,
		},
		Position:          domain.Position{Lat: r.Position.Lat, Lng: r.Position.Lng},
		Available:         r.Available,
		EmergencyServices: r.EmergencyServices,
		Website:           r.Website,
		Description:       r.Description,
	}
	for _, b := range r.Beds {
		input.Beds = append(input.Beds, domain.BedPool{
			Type:      domain.BedType(b.Type),
			Total:     b.Total,
			Available: b.Available,
		})
	}
	for _, d := range r.Doctors {
		input.Doctors = append(input.Doctors, domain.Doctor{
			Name:           d.Name,
			Specialization: domain.Specialization(d.Specialization),
			Available:      d.Available,
		})
	}
	return input
}

// List returns the full hospital directory. Public.
//
//	@Summary		List hospitals
//	@Tags			hospitals
//	@Produce		json
//	@Success		200	{object}	listResponse
//	@Router			/api/hospitals [get]
func (h *HospitalHandler) List(c echo.Context) error {
	hospitals, err := h.hospitals.List(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.DirectoryLookupsTotal.WithLabelValues("hospitals").Inc()
	return c.JSON(http.StatusOK, listResponse{Success: true, Count: len(hospitals), Data: hospitals})
}

// Get returns one hospital by id. Public.
//
//	@Summary		Get hospital
//	@Tags			hospitals
//	@Produce		json
//	@Param			id	path		string	true	"hospital id"
//	@Success		200	{object}	dataResponse
//	@Failure		404	{object}	messageResponse
//	@Router			/api/hospitals/{id} [get]
func (h *HospitalHandler) Get(c echo.Context) error {
	hospital, err := h.hospitals.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: hospital})
}

// Create registers a hospital entry owned by the caller.
//
//	@Summary		Create hospital
//	@Tags			hospitals
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		hospitalRequest	true	"hospital details"
//	@Success		201		{object}	dataResponse
//	@Failure		400		{object}	messageResponse
//	@Failure		409		{object}	messageResponse
//	@Router			/api/hospitals [post]
func (h *HospitalHandler) Create(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req hospitalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hospital, err := h.hospitals.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataResponse{Success: true, Data: hospital})
}

// Update replaces the writable fields of a hospital entry. Owner or admin.
//
//	@Summary		Update hospital
//	@Tags			hospitals
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"hospital id"
//	@Param			request	body		hospitalRequest	true	"hospital details"
//	@Success		200		{object}	dataResponse
//	@Failure		403		{object}	messageResponse
//	@Failure		404		{object}	messageResponse
//	@Router			/api/hospitals/{id} [put]
func (h *HospitalHandler) Update(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req hospitalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hospital, err := h.hospitals.Update(c.Request().Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: hospital})
}

// SetAvailability flips the whole-facility availability flag without
// touching the rest of the entry.
//
//	@Summary		Set hospital availability
//	@Tags			hospitals
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"hospital id"
//	@Param			request	body		availabilityRequest	true	"availability flag"
//	@Success		200		{object}	dataResponse
//	@Failure		403		{object}	messageResponse
//	@Failure		404		{object}	messageResponse
//	@Router			/api/hospitals/{id}/availability [patch]
func (h *HospitalHandler) SetAvailability(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hospital, err := h.hospitals.SetAvailability(c.Request().Context(), actor, c.Param("id"), *req.Available)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: hospital})
}

// Delete removes a hospital entry. Admin only, gated at the route.
//
//	@Summary		Delete hospital
//	@Tags			hospitals
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"hospital id"
//	@Success		200	{object}	messageResponse
//	@Failure		404	{object}	messageResponse
//	@Router			/api/hospitals/{id} [delete]
func (h *HospitalHandler) Delete(c echo.Context) error {
	if err := h.hospitals.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Hospital deleted"})
}

// Profile returns the hospital entry owned by the caller.
//
//	@Summary		Own hospital profile
//	@Tags			hospitals
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dataResponse
//	@Failure		404	{object}	messageResponse
//	@Router			/api/hospitals/profile [get]
func (h *HospitalHandler) Profile(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	hospital, err := h.hospitals.Profile(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: hospital})
}

// UpdateProfile updates the hospital entry owned by the caller.
//
//	@Summary		Update own hospital profile
//	@Tags			hospitals
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		hospitalRequest	true	"hospital details"
//	@Success		200		{object}	dataResponse
//	@Failure		404		{object}	messageResponse
//	@Router			/api/hospitals/profile [put]
func (h *HospitalHandler) UpdateProfile(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req hospitalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hospital, err := h.hospitals.UpdateProfile(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: hospital})
}
