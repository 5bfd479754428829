package config

import (
	"github.com/go-playground/validator/v10"

	ambienterrors "github.com/drummsters/ambientclock/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the resolved configuration against its declared
// constraints, returning the first violation as a ValidationError.
func Validate(cfg *Config) error {
	if cfg == nil {
		return ambienterrors.NewValidationError("", "configuration is nil", nil)
	}

	if err := validate.Struct(cfg); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			first := fieldErrors[0]
			return ambienterrors.NewValidationError(first.Namespace(), first.Tag(), err)
		}
		return ambienterrors.NewValidationError("", err.Error(), err)
	}
	return nil
}
