package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-api/internal/api/metrics"
	"github.com/bookstore/catalog-api/internal/core/domain"
)

// ContextKeyUser is the echo.Context key holding the resolved *domain.User.
const ContextKeyUser = "user"

// TokenVerifier resolves a bearer token to an identity.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
}

// Auth extracts the bearer token, verifies it and injects the user into
// context. A missing token short-circuits with domain.ErrNoToken before the
// verifier is called; every verification failure becomes
// domain.ErrUnauthorized, with the cause logged at debug level only.
func Auth(verifier TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				metrics.GuardRejectionsTotal.WithLabelValues("no_token").Inc()
				return domain.ErrNoToken
			}

			user, err := verifier.VerifyToken(c.Request().Context(), token)
			if err != nil {
				metrics.GuardRejectionsTotal.WithLabelValues("not_authorized").Inc()
				log.Debug().Err(err).
					Str("path", c.Path()).
					Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
					Msg("token rejected")
				return domain.ErrUnauthorized
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// bearerToken returns the token of a "Bearer <token>" header, or "" when the
// header is absent or uses another scheme.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
