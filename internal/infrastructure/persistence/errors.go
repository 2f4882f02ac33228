package persistence

import (
	"errors"
	"fmt"

	"github.com/campuscred/campuscred/internal/pkg/apperr"

	"gorm.io/gorm"
)

// translate maps GORM errors onto the shared error kinds
func translate(err error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", msg, apperr.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", msg, apperr.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}

func invalid(err error) error {
	return fmt.Errorf("validation error: %w: %w", apperr.ErrInvalidInput, err)
}
