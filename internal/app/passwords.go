package app

import (
	"fmt"
	"sync"

	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/validators"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input beyond 72 bytes
const maxPasswordBytes = 72

// HashPassword checks password complexity and returns its bcrypt hash
func HashPassword(password string) (string, error) {
	if err := CheckPassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword enforces the password policy
func CheckPassword(password string) error {
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("password longer than %d bytes: %w", maxPasswordBytes, apperr.ErrInvalidInput)
	}
	if !validators.PasswordComplexity(password) {
		return fmt.Errorf("password needs at least %d characters with upper and lower case letters, a digit and a symbol: %w",
			validators.MinPasswordLength, apperr.ErrInvalidInput)
	}
	return nil
}

// unknownAccountHash is compared against when no stored hash exists so that
// sign in for an unknown email costs one bcrypt comparison too
var unknownAccountHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("campuscred unknown account"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash placeholder password: %v", err))
	}
	return hash
})

// passwordMatches compares password with hash. An empty hash never matches
// but still costs a full comparison.
func passwordMatches(hash, password string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(unknownAccountHash(), []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
