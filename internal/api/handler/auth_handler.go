package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/resqlink/emergency-directory/internal/api/metrics"
	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/ports"
)

const tokenCookieName = "token"

// CookieOptions controls how the token cookie is written on login and
// signup. TTL matches the token lifetime so the cookie dies with the token.
type CookieOptions struct {
	Secure   bool
	SameSite http.SameSite
	TTL      time.Duration
}

type AuthHandler struct {
	auth   ports.AuthService
	cookie CookieOptions
}

func NewAuthHandler(auth ports.AuthService, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie}
}

type signupRequest struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,strongpassword"`
	Role     string `json:"role" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

// Signup creates an identity and signs the caller in.
//
//	@Summary		Create an account
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		signupRequest	true	"account details"
//	@Success		201		{object}	authResponse
//	@Failure		400		{object}	messageResponse
//	@Failure		409		{object}	messageResponse
//	@Router			/api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.auth.Signup(c.Request().Context(), ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(user.Role).Inc()
	h.setTokenCookie(c, token)

	return c.JSON(http.StatusCreated, authResponse{Success: true, User: user, Token: token})
}

// Login verifies credentials and issues a token.
//
//	@Summary		Sign in
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"credentials"
//	@Success		200		{object}	authResponse
//	@Failure		401		{object}	messageResponse
//	@Failure		429		{object}	messageResponse
//	@Router			/api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	h.setTokenCookie(c, token)

	return c.JSON(http.StatusOK, authResponse{Success: true, User: user, Token: token})
}

// Logout clears the token cookie. Tokens themselves stay valid until expiry;
// there is no server-side revocation.
//
//	@Summary		Sign out
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	messageResponse
//	@Router			/api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearTokenCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Logged out"})
}

func (h *AuthHandler) setTokenCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
	})
}

func (h *AuthHandler) clearTokenCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
	})
}
