package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Mail transport constants
const (
	MailTransportSMTP = "smtp"
	MailTransportLog  = "log"
)

// MailSettings configures outgoing mail for password resets and magic links.
// The log transport writes messages to the application logger instead of sending them.
type MailSettings struct {
	Transport string `mapstructure:"transport" validate:"required,oneof=smtp log"`
	Host      string `mapstructure:"host" validate:"required_if=Transport smtp"`
	Port      int    `mapstructure:"port" validate:"required_if=Transport smtp,omitempty,min=1,max=65535"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	From      string `mapstructure:"from" validate:"required,email"`
}

// Validate checks that all fields in MailSettings are valid
func (s *MailSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for MailSettings: %w", err)
	}
	return nil
}
