package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"golang.org/x/time/rate"
)

// Config carries the SMTP settings the mailer needs.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool
}

// SMTPMailer sends plain-text mail over SMTP. Sends are rate limited so a
// burst of signups cannot trip the upstream relay's throttling.
type SMTPMailer struct {
	cfg     Config
	limiter *rate.Limiter
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(1), 5),
	}
}

// Send delivers one message to one recipient. Any failure propagates to the
// caller; the signup flow treats it as fatal.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mail rate limit: %w", err)
	}

	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if m.cfg.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: m.cfg.Host,
			MinVersion: tls.VersionTLS12,
		}
		switch m.cfg.Port {
		case 465:
			return e.SendWithTLS(addr, auth, tlsConfig)
		case 587:
			return e.SendWithStartTLS(addr, auth, tlsConfig)
		default:
			return fmt.Errorf("unsupported port/TLS combination: port %d with TLS enabled", m.cfg.Port)
		}
	}

	return e.Send(addr, auth)
}
