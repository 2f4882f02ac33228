package mailer

import (
	"fmt"

	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/logger"
)

// NewMailer returns the mailer selected by settings.Transport
func NewMailer(settings *config.MailSettings, logger logger.Logger) (auth.Mailer, error) {
	switch settings.Transport {
	case config.MailTransportSMTP:
		return NewSMTPMailer(settings, logger)
	case config.MailTransportLog:
		return NewLogMailer(logger), nil
	default:
		return nil, fmt.Errorf("unsupported mail transport: %s", settings.Transport)
	}
}
