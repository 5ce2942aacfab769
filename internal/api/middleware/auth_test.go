package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/contactkeep/contacts-api/internal/core/domain"
	"github.com/contactkeep/contacts-api/internal/core/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (r *stubUserRepo) UpdateAvatar(_ context.Context, _, _ string) error {
	return nil
}

func expectUnauthorized(t *testing.T, e *echo.Echo, c echo.Context, rec *httptest.ResponseRecorder, handler echo.HandlerFunc) {
	t.Helper()
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderWWWAuthenticate) != "Bearer" {
		t.Fatalf("expected Bearer challenge header, got %q", rec.Header().Get(echo.HeaderWWWAuthenticate))
	}
}

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	tokens := service.NewTokenService("secret")
	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice@x.com": {ID: "u1", Username: "alice", Email: "alice@x.com"},
	}}

	signed, err := tokens.Issue("alice@x.com", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(tokens, repo)(func(c echo.Context) error {
		called = true
		user, ok := c.Get(UserContextKey).(*domain.User)
		if !ok || user.Email != "alice@x.com" {
			t.Fatalf("user not bound to context: %+v", c.Get(UserContextKey))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	tokens := service.NewTokenService("secret")
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	expectUnauthorized(t, e, c, rec, handler)
}

func TestAuth_WrongScheme(t *testing.T) {
	e := echo.New()
	tokens := service.NewTokenService("secret")
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	expectUnauthorized(t, e, c, rec, handler)
}

func TestAuth_ExpiredToken(t *testing.T) {
	e := echo.New()
	past := time.Now().Add(-time.Hour)
	issuer := service.NewTokenService("secret").WithClock(func() time.Time { return past })
	signed, err := issuer.Issue("alice@x.com", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tokens := service.NewTokenService("secret")
	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice@x.com": {ID: "u1", Email: "alice@x.com"},
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	expectUnauthorized(t, e, c, rec, handler)
}

func TestAuth_UnknownSubject(t *testing.T) {
	e := echo.New()
	tokens := service.NewTokenService("secret")
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	signed, err := tokens.Issue("ghost@x.com", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	expectUnauthorized(t, e, c, rec, handler)
}

func TestAuth_GarbageToken(t *testing.T) {
	e := echo.New()
	tokens := service.NewTokenService("secret")
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	expectUnauthorized(t, e, c, rec, handler)
}
