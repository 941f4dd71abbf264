// Package notify delivers notifications outside the database: e-mail through
// SMTP and realtime fan-out through Redis pub/sub.
package notify

import (
	"context"

	"gopkg.in/gomail.v2"

	"github.com/spec-kit/job-portal/internal/config"
)

// Mailer sends a single plain e-mail.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through gomail.
type SMTPMailer struct {
	from   string
	dialer *gomail.Dialer
}

// NewMailer returns an SMTP mailer, or a no-op mailer when no SMTP host is set.
func NewMailer(smtp config.SMTPConfig, from string) Mailer {
	if smtp.Host == "" {
		return NoopMailer{}
	}
	return &SMTPMailer{
		from:   from,
		dialer: gomail.NewDialer(smtp.Host, smtp.Port, smtp.User, smtp.Password),
	}
}

// Send implements Mailer. gomail has no context support; ctx is checked once
// before dialing.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}

// NoopMailer discards mail.
type NoopMailer struct{}

// Send implements Mailer.
func (NoopMailer) Send(context.Context, string, string, string) error { return nil }
