package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/posts-gateway/internal/auth"
	"github.com/sirpyerre/posts-gateway/internal/core/domain"
)

func newContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	codec := auth.NewCodec("secret", time.Hour)
	token, err := codec.Issue("alice", []domain.Role{domain.RoleUser, domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, rec := newContext("Bearer " + token)

	called := false
	handler := Auth(codec, zerolog.Nop())(func(c echo.Context) error {
		called = true
		principal, ok := CurrentPrincipal(c)
		if !ok {
			t.Fatalf("principal not set")
		}
		if principal.Username != "alice" {
			t.Fatalf("unexpected principal subject %q", principal.Username)
		}
		if !principal.HasRole(domain.RoleAdmin) {
			t.Fatalf("expected admin role, got %v", principal.Roles)
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

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	codec := auth.NewCodec("secret", time.Hour)
	c, _ := newContext("")

	handler := Auth(codec, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrTokenAbsent) {
		t.Fatalf("expected ErrTokenAbsent, got %v", err)
	}
}

func TestAuthMiddleware_WrongPrefix(t *testing.T) {
	codec := auth.NewCodec("secret", time.Hour)
	c, _ := newContext("Token abc")

	handler := Auth(codec, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrTokenAbsent) {
		t.Fatalf("expected ErrTokenAbsent, got %v", err)
	}
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	codec := auth.NewCodec("secret", time.Hour)
	c, _ := newContext("Bearer not-a-token")

	handler := Auth(codec, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

// An expired token rejects; it never falls through to anonymous.
func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	codec := auth.NewCodec("secret", time.Hour)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub":   "alice",
		"roles": []string{string(domain.RoleUser)},
		"exp":   time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	c, _ := newContext("Bearer " + expired)

	handler := Auth(codec, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
