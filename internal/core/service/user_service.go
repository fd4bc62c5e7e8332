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

// UserService implements identity directory operations.
type UserService struct {
	users     ports.UserRepository
	histories ports.HistoryRepository
	logger    zerolog.Logger
}

func NewUserService(users ports.UserRepository, histories ports.HistoryRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, histories: histories, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.User, len(users))
	for i, u := range users {
		out[i] = u.Sanitized()
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// Update applies a partial update. Only the account owner or an admin may
// write; the password is re-hashed only when a new one is supplied.
func (s *UserService) Update(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	if input.Actor.ID != input.TargetID && input.Actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, input.TargetID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}

	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" && email != user.Email {
		if _, err := s.users.FindByEmail(ctx, email); err == nil {
			return nil, domain.ErrEmailExists
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = email
	}

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", updated.ID).Msg("identity updated")
	return updated.Sanitized(), nil
}

// Delete removes an identity. Only the account owner or an admin may delete.
// A patient's medical record goes with the account.
func (s *UserService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if actor.ID != id && actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	if user.Role == domain.RolePatient && s.histories != nil {
		if err := s.histories.DeleteByPatient(ctx, id); err != nil && !errors.Is(err, domain.ErrHistoryNotFound) {
			s.logger.Warn().Err(err).Str("user_id", id).Msg("orphaned patient history")
		}
	}

	s.logger.Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("identity deleted")
	return nil
}
