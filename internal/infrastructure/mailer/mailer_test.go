//go:build unit
// +build unit

package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smtpSettings() *config.MailSettings {
	return &config.MailSettings{
		Transport: config.MailTransportSMTP,
		Host:      "smtp.campus.edu",
		Port:      587,
		Username:  "mailer",
		Password:  "secret",
		From:      "no-reply@campus.edu",
	}
}

func TestNewMailer(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	m, err := NewMailer(smtpSettings(), logger)
	require.NoError(t, err)
	assert.IsType(t, &smtpMailer{}, m)

	m, err = NewMailer(&config.MailSettings{Transport: config.MailTransportLog, From: "a@b.edu"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &logMailer{}, m)

	_, err = NewMailer(&config.MailSettings{Transport: "pigeon"}, logger)
	assert.Error(t, err)
}

func TestSMTPMailer_Send(t *testing.T) {
	m, err := NewSMTPMailer(smtpSettings(), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.(*smtpMailer).send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err = m.Send(context.Background(), &auth.Message{
		To:      "ada@campus.edu",
		Subject: "Reset your password",
		Body:    "Open the link\nhttps://app/reset",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.campus.edu:587", gotAddr)
	assert.Equal(t, "no-reply@campus.edu", gotFrom)
	assert.Equal(t, []string{"ada@campus.edu"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Reset your password\r\n")
	assert.Contains(t, string(gotMsg), "Open the link\r\nhttps://app/reset")
}

func TestSMTPMailer_SendFailure(t *testing.T) {
	m, err := NewSMTPMailer(smtpSettings(), testutil.SetupTestLogger(t))
	require.NoError(t, err)
	m.(*smtpMailer).send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err = m.Send(context.Background(), &auth.Message{To: "ada@campus.edu"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestBuildMessage_StripsHeaderInjection(t *testing.T) {
	msg := buildMessage("a@b.edu", &auth.Message{
		To:      "c@d.edu",
		Subject: "Hi\r\nBcc: evil@x.com",
	}, time.Now())

	assert.Contains(t, string(msg), "Subject: HiBcc: evil@x.com\r\n")
	assert.NotContains(t, string(msg), "\r\nBcc:")
}
