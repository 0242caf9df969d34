// Package validation adapts go-playground/validator to echo's
// Validator interface.
package validation

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator wraps a validator.Validate instance for echo.
type Validator struct {
	validate *validator.Validate
}

// New builds the request validator used by all handlers.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.  Struct tag violations become a
// 400 response with the validator's message.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
