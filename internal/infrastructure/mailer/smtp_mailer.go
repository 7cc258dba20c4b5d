package mailer

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/jhoicas/Docuport-api/internal/application/notify"
	"github.com/jhoicas/Docuport-api/pkg/config"
)

// SMTPMailer entrega correos vía SMTP. Cada envío abre su propia conexión:
// el volumen lo regula la cola, no hace falta mantener sesiones abiertas.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

var _ notify.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer crea el entregador con la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send entrega un correo HTML ya renderizado.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo a %s: %w", to, err)
	}
	return nil
}
