package mailer

import (
	"fmt"

	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"
)

// Mailer dispatches verification codes to registered email addresses.
// Failures must be surfaced to the caller, never swallowed.
type Mailer interface {
	SendVerificationEmail(to, username, code string) error
}

// Config holds SMTP connection details.
type Config struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// SMTPMailer sends verification emails over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   cfg.From,
	}
}

// SendVerificationEmail sends the one-time code to the given address.
// The code itself is never logged.
func (m *SMTPMailer) SendVerificationEmail(to, username, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "SilentVoice Verification Code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour SilentVoice verification code is: %s\n\nThe code expires in one hour. If you did not request it, you can ignore this email.\n",
		username, code,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	logrus.Infof("Verification email sent to user %s", username)
	return nil
}
