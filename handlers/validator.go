package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapta go-playground/validator al hook de Echo.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New()}
}

func (cv *Validator) Validate(i any) error {
	if err := cv.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, map[string]any{
			"error":  "VALIDATION_ERROR",
			"detail": err.Error(),
		})
	}
	return nil
}
