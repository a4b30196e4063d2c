package ports

import (
	"context"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

// AuthResult pairs the public user with a freshly signed token.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
}
