package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"comandapos/internal/config"
)

// Mailer envía correos por SMTP plano con autenticación.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send despacha un correo con adjuntos opcionales.
func (m *Mailer) Send(to []string, subject, body string, attachments []string) error {
	e := email.NewEmail()
	e.From = m.cfg.SMTPUser
	e.To = to
	e.Subject = subject
	e.HTML = []byte(body)
	for _, path := range attachments {
		if _, err := e.AttachFile(path); err != nil {
			return fmt.Errorf("adjuntar %s: %w", path, err)
		}
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	return e.Send(addr, auth)
}
