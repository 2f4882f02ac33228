package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// AuthSettings configures token issuance and the session cookie
type AuthSettings struct {
	JWTSecret      string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	Issuer         string        `mapstructure:"issuer" validate:"required"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl" validate:"required,min=1m"`
	ResetTokenTTL  time.Duration `mapstructure:"reset_token_ttl" validate:"required,min=1m"`
	MagicLinkTTL   time.Duration `mapstructure:"magic_link_ttl" validate:"required,min=1m"`
	CookieName     string        `mapstructure:"cookie_name" validate:"required"`
	CookieDomain   string        `mapstructure:"cookie_domain"`
	CookieSecure   bool          `mapstructure:"cookie_secure"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}
	return nil
}
