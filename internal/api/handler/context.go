package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-api/internal/api/middleware"
	"github.com/bookstore/catalog-api/internal/core/domain"
)

// currentUser returns the identity attached by the Auth middleware. A
// missing identity means the route was mounted without the guard; it is
// reported as unauthorized rather than trusted.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextKeyUser).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
