package utils

import (
	"gopkg.in/gomail.v2"

	"github.com/bookwise/bookwise/config"
)

// Mailer sends notification mail. A nil Mailer drops everything, so
// callers can hold one unconditionally.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer returns nil when SMTP is not configured.
func NewMailer(cfg config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass),
		from:   cfg.EmailUser,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	if m == nil {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}
