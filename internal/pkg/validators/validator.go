// Package validators provides the custom validation rules used by domain entities.
package validators

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with every custom rule of this package registered.
func New() (*validator.Validate, error) {
	validate := validator.New()

	if err := validate.RegisterValidation("password", PasswordValidation); err != nil {
		return nil, fmt.Errorf("failed to register custom validator: %w", err)
	}
	if err := validate.RegisterValidation("slug", SlugValidation); err != nil {
		return nil, fmt.Errorf("failed to register custom validator: %w", err)
	}
	return validate, nil
}

// Struct validates s and flattens validation errors into "Field: X, Tag: Y" messages.
func Struct(s interface{}) error {
	validate, err := New()
	if err != nil {
		return err
	}

	err = validate.Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}
