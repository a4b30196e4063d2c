package ports

import (
	"context"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

// AuthRepository defines the interface for user identity persistence.
type AuthRepository interface {
	// Create stores a new user and returns it with its generated ID.
	// Returns domain.ErrUserExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
