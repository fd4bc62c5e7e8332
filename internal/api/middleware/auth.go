package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/resqlink/emergency-directory/internal/api/metrics"
	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/ports"
)

// Context keys set by Auth for downstream middleware and handlers.
const (
	ContextIdentity = "identity"
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
)

// tokenCookieName is the fallback transport for browser clients; the
// Authorization header is checked first.
const tokenCookieName = "token"

// Auth verifies the bearer credential, loads the referenced identity, and
// attaches it (without credential material) to the request context.
//
// Every failure mode (missing token, bad signature, expiry, deleted user)
// produces the same generic 401 so responses cannot be used to enumerate
// accounts. The real cause goes to the log and the rejection metric only.
func Auth(tokens ports.TokenIssuer, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return reject(c, log, "missing_token")
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return reject(c, log, "token_expired")
				}
				return reject(c, log, "token_invalid")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return reject(c, log, "identity_not_found")
				}
				return err
			}

			identity := user.Sanitized()
			c.Set(ContextIdentity, identity)
			c.Set(ContextUserID, identity.ID)
			c.Set(ContextUsername, identity.Username)
			c.Set(ContextRole, identity.Role)

			return next(c)
		}
	}
}

// extractToken locates a candidate token: Authorization header first, then
// the token cookie. A malformed header is treated as no token at all.
func extractToken(c echo.Context) string {
	if header := c.Request().Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(tokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func reject(c echo.Context, log zerolog.Logger, reason string) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	log.Debug().
		Str("reason", reason).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request rejected")
	return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
}
