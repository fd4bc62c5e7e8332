package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/ports"
)

// AuthService implements signup and login.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenIssuer
	throttle ports.LoginThrottle
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, throttle: throttle, logger: logger}
}

// Signup creates an identity and returns it together with a fresh token.
// Username and email are lowercased before storage so uniqueness is
// case-insensitive. The admin role cannot be self-assigned.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, string, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" || email == "" || input.Password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(input.Role) || input.Role == domain.RoleAdmin {
		return nil, "", domain.ErrRoleNotAllowed
	}

	if err := s.checkDuplicates(ctx, username, email); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, _, err := s.tokens.Issue(created.ID, created.Username, created.Role)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("username", created.Username).Str("role", created.Role).Msg("identity created")
	return created.Sanitized(), token, nil
}

// Login verifies credentials and mints a token. Every credential failure
// surfaces as the same ErrInvalidCredentials so responses cannot be used to
// enumerate accounts; only the internal log distinguishes causes.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, username)
		if err != nil {
			// A throttle outage must not take logins down with it.
			s.logger.Warn().Err(err).Msg("login throttle unavailable")
		} else if blocked {
			return nil, "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username, "unknown username")
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username, "password mismatch")
		return nil, "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	token, _, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("username", user.Username).Msg("login succeeded")
	return user.Sanitized(), token, nil
}

func (s *AuthService) checkDuplicates(ctx context.Context, username, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return domain.ErrUsernameExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, username, reason string) {
	s.logger.Info().Str("username", username).Str("reason", reason).Msg("login rejected")
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle record failed")
	}
}
