package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func authFixture(t *testing.T) (*service.TokenService, *stubUserRepo, string) {
	t.Helper()
	tokens := service.NewTokenService("secret", time.Hour)
	repo := newStubUserRepo(&domain.User{
		ID:           "user_1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Role:         domain.RolePatient,
	})
	signed, _, err := tokens.Issue("user_1", "alice", domain.RolePatient)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tokens, repo, signed
}

func TestAuthMiddleware_ValidHeaderToken(t *testing.T) {
	e := echo.New()
	tokens, repo, signed := authFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(tokens, repo, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(ContextUserID) != "user_1" {
			t.Fatalf("user id not set")
		}
		if c.Get(ContextRole) != domain.RolePatient {
			t.Fatalf("role not set")
		}
		identity, ok := c.Get(ContextIdentity).(*domain.User)
		if !ok || identity.Username != "alice" {
			t.Fatalf("identity not attached")
		}
		if identity.PasswordHash != "" {
			t.Fatalf("credential material leaked into context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_CookieFallback(t *testing.T) {
	e := echo.New()
	tokens, repo, signed := authFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: signed})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(tokens, repo, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func expect401(t *testing.T, e *echo.Echo, req *http.Request, mw echo.MiddlewareFunc) {
	t.Helper()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	e := echo.New()
	tokens, repo, _ := authFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	expect401(t, e, req, Auth(tokens, repo, zerolog.Nop()))
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	e := echo.New()
	tokens, repo, signed := authFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token "+signed)
	expect401(t, e, req, Auth(tokens, repo, zerolog.Nop()))
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e := echo.New()
	tokens, repo, _ := authFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	expect401(t, e, req, Auth(tokens, repo, zerolog.Nop()))
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	e := echo.New()
	tokens, repo, _ := authFixture(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user_1",
		"role": domain.RolePatient,
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	expect401(t, e, req, Auth(tokens, repo, zerolog.Nop()))
}

func TestAuthMiddleware_DeletedUser(t *testing.T) {
	e := echo.New()
	tokens, _, signed := authFixture(t)

	// The token is valid but the identity behind it is gone.
	empty := newStubUserRepo()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	expect401(t, e, req, Auth(tokens, empty, zerolog.Nop()))
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	e := echo.New()
	_, repo, _ := authFixture(t)

	other := service.NewTokenService("other-secret", time.Hour)
	signed, _, err := other.Issue("user_1", "alice", domain.RolePatient)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	verifier := service.NewTokenService("secret", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	expect401(t, e, req, Auth(verifier, repo, zerolog.Nop()))
}
