package mailer

import (
	"context"

	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/pkg/logger"
)

type logMailer struct {
	logger logger.Logger
}

// NewLogMailer writes messages to the logger instead of delivering them
func NewLogMailer(logger logger.Logger) auth.Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(_ context.Context, message *auth.Message) error {
	m.logger.Info("Mail to ", message.To, " | ", message.Subject, " | ", message.Body)
	return nil
}
