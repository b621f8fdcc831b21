package mail

import (
	"bytes"
	"fmt"
	"net/smtp"
	"text/template"

	"github.com/jordan-wright/email"
	log "github.com/sirupsen/logrus"

	"github.com/DonaldEOgbame/subscription-platform/internal/pkg/env"
)

// Mailer sends transactional mail (invoice delivery, renewal reminders)
// over SMTP.
type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewFromEnv builds a mailer from SMTP_* environment configuration.
func NewFromEnv() *Mailer {
	sender := env.GetEnv("SMTP_SENDER", "")
	if sender == "" {
		sender = "no-reply@localhost"
		log.Warnf("SMTP_SENDER not set, using default sender: %s", sender)
	}
	return &Mailer{
		host: env.GetEnv("SMTP_HOST", ""),
		port: env.GetEnv("SMTP_PORT", "587"),
		user: env.GetEnv("SMTP_USERNAME", ""),
		pass: env.GetEnv("SMTP_PASSWORD", ""),
		from: sender,
	}
}

// Send delivers a plain-text message to a single recipient.
func (m *Mailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.user != "" && m.pass != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if err := e.Send(addr, auth); err != nil {
		log.Errorf("SMTP send to %s failed: %v", to, err)
		return err
	}
	return nil
}

// RenderTemplate executes a platform mail template (invoice or reminder
// bodies stored in PlatformSettings) against the given data.
func RenderTemplate(tmpl string, data any) (string, error) {
	t, err := template.New("mail").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse mail template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render mail template: %w", err)
	}
	return buf.String(), nil
}

// SendReminder renders the platform reminder template and mails it.
func (m *Mailer) SendReminder(to, subject, tmpl string, data any) error {
	body, err := RenderTemplate(tmpl, data)
	if err != nil {
		return err
	}
	return m.Send(to, subject, body)
}
