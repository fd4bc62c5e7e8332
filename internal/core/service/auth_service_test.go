package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
		if u.Username == user.Username {
			return nil, domain.ErrUsernameExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubThrottle struct {
	blocked   bool
	blockErr  error
	failures  int
	resets    int
	recordErr error
}

func (t *stubThrottle) Blocked(context.Context, string) (bool, error) {
	return t.blocked, t.blockErr
}

func (t *stubThrottle) RecordFailure(context.Context, string) error {
	t.failures++
	return t.recordErr
}

func (t *stubThrottle) Reset(context.Context, string) error {
	t.resets++
	return nil
}

func newAuthService(repo *stubUserRepo, throttle *stubThrottle) *AuthService {
	return NewAuthService(repo, NewTokenService("secret", time.Hour), throttle, zerolog.Nop())
}

func signupInput(username, email string) ports.SignupInput {
	return ports.SignupInput{
		Name:     "Test User",
		Email:    email,
		Username: username,
		Password: "Str0ng!pass",
		Role:     domain.RolePatient,
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubThrottle{})

	user, token, err := svc.Signup(context.Background(), signupInput("alice", "alice@example.com"))
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.PasswordHash != "" {
		t.Fatalf("expected sanitized user, hash leaked")
	}

	stored, err := repo.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.PasswordHash == "Str0ng!pass" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Str0ng!pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Signup_LowercasesIdentifiers(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubThrottle{})

	in := signupInput("  Alice  ", " Alice@Example.COM ")
	user, _, err := svc.Signup(context.Background(), in)
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if user.Username != "alice" || user.Email != "alice@example.com" {
		t.Fatalf("identifiers not normalized: %q %q", user.Username, user.Email)
	}
}

func TestAuthService_Signup_AdminRejected(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubThrottle{})

	in := signupInput("mallory", "mallory@example.com")
	in.Role = domain.RoleAdmin
	if _, _, err := svc.Signup(context.Background(), in); !errors.Is(err, domain.ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed, got %v", err)
	}

	in.Role = "superuser"
	if _, _, err := svc.Signup(context.Background(), in); !errors.Is(err, domain.ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed for unknown role, got %v", err)
	}
}

func TestAuthService_Signup_Duplicates(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubThrottle{})

	if _, _, err := svc.Signup(context.Background(), signupInput("bob", "bob@example.com")); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, _, err := svc.Signup(context.Background(), signupInput("bob2", "bob@example.com")); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if _, _, err := svc.Signup(context.Background(), signupInput("bob", "bob2@example.com")); !errors.Is(err, domain.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{}
	svc := newAuthService(repo, throttle)

	if _, _, err := svc.Signup(context.Background(), signupInput("carol", "carol@example.com")); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "Carol", "Str0ng!pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash != "" {
		t.Fatalf("expected sanitized user, hash leaked")
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset, got %d", throttle.resets)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{}
	svc := newAuthService(repo, throttle)

	_, _, _ = svc.Signup(context.Background(), signupInput("dave", "dave@example.com"))

	if _, _, err := svc.Login(context.Background(), "dave", "wrongpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures != 1 {
		t.Fatalf("expected recorded failure, got %d", throttle.failures)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	throttle := &stubThrottle{}
	svc := newAuthService(newStubUserRepo(), throttle)

	// Unknown username surfaces the same error as a wrong password.
	if _, _, err := svc.Login(context.Background(), "ghost", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures != 1 {
		t.Fatalf("expected recorded failure, got %d", throttle.failures)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubThrottle{blocked: true})

	_, _, _ = svc.Signup(context.Background(), signupInput("erin", "erin@example.com"))

	if _, _, err := svc.Login(context.Background(), "erin", "Str0ng!pass"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ThrottleOutage(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{blockErr: errors.New("redis down")}
	svc := newAuthService(repo, throttle)

	_, _, _ = svc.Signup(context.Background(), signupInput("frank", "frank@example.com"))

	// A throttle outage must not block valid logins.
	if _, _, err := svc.Login(context.Background(), "frank", "Str0ng!pass"); err != nil {
		t.Fatalf("login failed during throttle outage: %v", err)
	}
}
