// Package mailer delivers schedule alert emails. Delivery is best-effort:
// callers log failures and continue, so a bad address never aborts a
// recalculation that already persisted.
package mailer

import (
	"fmt"
	"net/smtp"

	"qualityflow-backend/internal/config"

	"github.com/sirupsen/logrus"
)

// Mailer sends a plain-text email to a single recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

// NewSMTPMailer creates a mailer from the application config
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

// Send delivers one message via SMTP
func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.from, to, subject, body)

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes messages to the application log instead of delivering
// them. Used in development when no SMTP relay is configured.
type LogMailer struct{}

// Send logs one message
func (m *LogMailer) Send(to, subject, body string) error {
	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("email delivery disabled, logging alert instead")
	return nil
}

// FromConfig returns an SMTP mailer when a relay is configured, otherwise a
// log-only mailer.
func FromConfig(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return &LogMailer{}
	}
	return NewSMTPMailer(cfg)
}
