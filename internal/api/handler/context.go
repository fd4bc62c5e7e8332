package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resqlink/emergency-directory/internal/api/middleware"
	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/ports"
)

// actorFromContext reads the authenticated caller stored by the auth
// middleware. A gated route reaching a handler without one is a wiring bug,
// but it still fails closed with a 401.
func actorFromContext(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get(middleware.ContextUserID).(string)
	role, _ := c.Get(middleware.ContextRole).(string)
	if id == "" || role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return ports.Actor{ID: id, Role: role}, nil
}

func identityFromContext(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextIdentity).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return user, nil
}
