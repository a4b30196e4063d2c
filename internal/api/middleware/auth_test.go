package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

type stubVerifier struct {
	calls    int
	verifyFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubVerifier) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	s.calls++
	return s.verifyFn(ctx, token)
}

func acceptToken(want string, user *domain.User) *stubVerifier {
	return &stubVerifier{
		verifyFn: func(_ context.Context, token string) (*domain.User, error) {
			if token != want {
				return nil, errors.New("signature is invalid")
			}
			return user, nil
		},
	}
}

func runGuard(t *testing.T, verifier TokenVerifier, header string) (called bool, ctxUser any, err error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	h := Auth(verifier, zerolog.Nop())(func(c echo.Context) error {
		called = true
		ctxUser = c.Get(ContextKeyUser)
		return nil
	})
	err = h(c)
	return called, ctxUser, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "a@x.io"}
	verifier := acceptToken("good", user)

	called, ctxUser, err := runGuard(t, verifier, "Bearer good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected next handler to be called")
	}
	if ctxUser != user {
		t.Fatalf("user not set in context, got %v", ctxUser)
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	verifier := acceptToken("good", &domain.User{ID: "u1"})

	called, _, err := runGuard(t, verifier, "bearer   good ")
	if err != nil || !called {
		t.Fatalf("expected request to pass, err=%v called=%v", err, called)
	}
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	cases := map[string]string{
		"missing header": "",
		"basic scheme":   "Basic dXNlcjpwYXNz",
		"bare token":     "abc.def.ghi",
		"empty bearer":   "Bearer ",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			verifier := acceptToken("good", &domain.User{ID: "u1"})

			called, _, err := runGuard(t, verifier, header)
			if !errors.Is(err, domain.ErrNoToken) {
				t.Fatalf("expected ErrNoToken, got %v", err)
			}
			if called {
				t.Fatal("next handler must not run")
			}
			if verifier.calls != 0 {
				t.Fatalf("verifier must not be called without a token, got %d calls", verifier.calls)
			}
		})
	}
}

func TestAuthMiddleware_InvalidTokenHidesCause(t *testing.T) {
	verifier := acceptToken("good", &domain.User{ID: "u1"})

	called, ctxUser, err := runGuard(t, verifier, "Bearer forged")
	if err != domain.ErrUnauthorized {
		t.Fatalf("expected bare ErrUnauthorized, got %v", err)
	}
	if called || ctxUser != nil {
		t.Fatal("next handler must not run")
	}
	if verifier.calls != 1 {
		t.Fatalf("expected one verification, got %d", verifier.calls)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"BEARER abc", "abc"},
		{"  Bearer   abc  ", "abc"},
		{"Bearer", ""},
		{"Token abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := bearerToken(tt.header); got != tt.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
