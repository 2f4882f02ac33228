package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/logger"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	addr   string
	host   string
	from   string
	auth   smtp.Auth
	send   sendFunc
	logger logger.Logger
}

// NewSMTPMailer sends plain text mail through the configured relay
func NewSMTPMailer(settings *config.MailSettings, logger logger.Logger) (auth.Mailer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	var smtpAuth smtp.Auth
	if settings.Username != "" {
		smtpAuth = smtp.PlainAuth("", settings.Username, settings.Password, settings.Host)
	}

	return &smtpMailer{
		addr:   net.JoinHostPort(settings.Host, strconv.Itoa(settings.Port)),
		host:   settings.Host,
		from:   settings.From,
		auth:   smtpAuth,
		send:   smtp.SendMail,
		logger: logger,
	}, nil
}

func (m *smtpMailer) Send(ctx context.Context, message *auth.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.send(m.addr, m.auth, m.from, []string{message.To}, buildMessage(m.from, message, time.Now())); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", message.To, err)
	}

	m.logger.Info("Sent mail '", message.Subject, "' to ", message.To)
	return nil
}

func buildMessage(from string, message *auth.Message, now time.Time) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + message.To + "\r\n")
	b.WriteString("Subject: " + stripNewlines(message.Subject) + "\r\n")
	b.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(message.Body, "\n", "\r\n"))
	return []byte(b.String())
}

func stripNewlines(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
