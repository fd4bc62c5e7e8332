package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resqlink/emergency-directory/internal/api/metrics"
	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/ports"
)

type BloodBankHandler struct {
	banks ports.BloodBankService
}

func NewBloodBankHandler(banks ports.BloodBankService) *BloodBankHandler {
	return &BloodBankHandler{banks: banks}
}

type bloodStockRequest struct {
	Group     string `json:"group" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Available int    `json:"available" validate:"min=0"`
}

type bloodBankRequest struct {
	Name      string              `json:"name" validate:"required,max=150"`
	Phone     string              `json:"phone" validate:"required,numeric,len=10"`
	Hotline   string              `json:"hotline" validate:"omitempty,numeric,len=10"`
	Address   addressRequest      `json:"address" validate:"required"`
	Position  positionRequest     `json:"position"`
	Available bool                `json:"available"`
	Inventory []bloodStockRequest `json:"inventory" validate:"dive"`
}

func (r bloodBankRequest) toInput() ports.BloodBankInput {
	input := ports.BloodBankInput{
		Name:    r.Name,
		Phone:   r.Phone,
		Hotline: r.Hotline,
		Address: domain.Address{
			Street: r.Address.Street,
			City:   r.Address.City,
			State:  r.Address.State,
		},
		Position:  domain.Position{Lat: r.Position.Lat, Lng: r.Position.Lng},
		Available: r.Available,
	}
	for _, s := range r.Inventory {
		input.Inventory = append(input.Inventory, domain.BloodStock{
			Group:     domain.BloodGroup(s.Group),
			Available: s.Available,
		})
	}
	return input
}

// List returns the full blood bank directory. Public.
//
//	@Summary		List blood banks
//	@Tags			bloodbanks
//	@Produce		json
//	@Success		200	{object}	listResponse
//	@Router			/api/bloodbanks [get]
func (h *BloodBankHandler) List(c echo.Context) error {
	banks, err := h.banks.List(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.DirectoryLookupsTotal.WithLabelValues("bloodbanks").Inc()
	return c.JSON(http.StatusOK, listResponse{Success: true, Count: len(banks), Data: banks})
}

// Get returns one blood bank by id. Public.
//
//	@Summary		Get blood bank
//	@Tags			bloodbanks
//	@Produce		json
//	@Param			id	path		string	true	"blood bank id"
//	@Success		200	{object}	dataResponse
//	@Failure		404	{object}	messageResponse
//	@Router			/api/bloodbanks/{id} [get]
func (h *BloodBankHandler) Get(c echo.Context) error {
	bank, err := h.banks.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: bank})
}

// Create registers a blood bank entry owned by the caller.
//
//	@Summary		Create blood bank
//	@Tags			bloodbanks
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		bloodBankRequest	true	"blood bank details"
//	@Success		201		{object}	dataResponse
//	@Failure		400		{object}	messageResponse
//	@Failure		409		{object}	messageResponse
//	@Router			/api/bloodbanks [post]
func (h *BloodBankHandler) Create(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req bloodBankRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	bank, err := h.banks.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataResponse{Success: true, Data: bank})
}

// Delete removes a blood bank entry. Admin only, gated at the route.
//
//	@Summary		Delete blood bank
//	@Tags			bloodbanks
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"blood bank id"
//	@Success		200	{object}	messageResponse
//	@Failure		404	{object}	messageResponse
//	@Router			/api/bloodbanks/{id} [delete]
func (h *BloodBankHandler) Delete(c echo.Context) error {
	if err := h.banks.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Blood bank deleted"})
}

// Profile returns the blood bank entry owned by the caller.
//
//	@Summary		Own blood bank profile
//	@Tags			bloodbanks
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dataResponse
//	@Failure		404	{object}	messageResponse
//	@Router			/api/bloodbanks/profile [get]
func (h *BloodBankHandler) Profile(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	bank, err := h.banks.Profile(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: bank})
}

// UpdateProfile updates the blood bank entry owned by the caller.
//
//	@Summary		Update own blood bank profile
//	@Tags			bloodbanks
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		bloodBankRequest	true	"blood bank details"
//	@Success		200		{object}	dataResponse
//	@Failure		404		{object}	messageResponse
//	@Router			/api/bloodbanks/profile [put]
func (h *BloodBankHandler) UpdateProfile(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req bloodBankRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	bank, err := h.banks.UpdateProfile(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: bank})
}

// UpdateStock upserts the unit count for one blood group on the caller's
// own bank and returns the resulting inventory.
//
//	@Summary		Update blood stock
//	@Tags			bloodbanks
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		bloodStockRequest	true	"group and unit count"
//	@Success		200		{object}	dataResponse
//	@Failure		400		{object}	messageResponse
//	@Failure		404		{object}	messageResponse
//	@Router			/api/bloodbanks/inventory [put]
func (h *BloodBankHandler) UpdateStock(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req bloodStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	inventory, err := h.banks.UpdateStock(c.Request().Context(), actor, domain.BloodGroup(req.Group), req.Available)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: inventory})
}
