package handler

import (
	"github.com/bookstore/catalog-api/internal/core/validation"
)

// echoValidator adapts validation.Validator so Echo can call c.Validate(req).
// Failures are *domain.ValidationError values, rendered as 400 by the
// HTTP error handler.
type echoValidator struct {
	v *validation.Validator
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validation.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Struct(i)
}
