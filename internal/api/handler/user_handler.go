package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type updateUserRequest struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,strongpassword"`
}

type userResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

// CheckAuth echoes the identity the auth middleware resolved, so clients can
// restore a session from a stored token.
//
//	@Summary		Current identity
//	@Tags			users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	userResponse
//	@Failure		401	{object}	messageResponse
//	@Router			/api/users/check-auth [get]
func (h *UserHandler) CheckAuth(c echo.Context) error {
	user, err := identityFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}

// List returns every identity. Admin only, gated at the route.
//
//	@Summary		List identities
//	@Tags			users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	listResponse
//	@Failure		403	{object}	messageResponse
//	@Router			/api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Success: true, Count: len(users), Data: users})
}

// Get returns one identity by id.
//
//	@Summary		Get identity
//	@Tags			users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"user id"
//	@Success		200	{object}	userResponse
//	@Failure		404	{object}	messageResponse
//	@Router			/api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}

// Update modifies an identity. Self or admin; enforced in the service.
//
//	@Summary		Update identity
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"user id"
//	@Param			request	body		updateUserRequest	true	"fields to change"
//	@Success		200		{object}	userResponse
//	@Failure		403		{object}	messageResponse
//	@Failure		409		{object}	messageResponse
//	@Router			/api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Update(c.Request().Context(), ports.UpdateUserInput{
		Actor:    actor,
		TargetID: c.Param("id"),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}

// Delete removes an identity. Self or admin; enforced in the service.
//
//	@Summary		Delete identity
//	@Tags			users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"user id"
//	@Success		200	{object}	messageResponse
//	@Failure		403	{object}	messageResponse
//	@Router			/api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "User deleted"})
}
