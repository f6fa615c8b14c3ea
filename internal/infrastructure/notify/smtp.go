package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPSender entrega por SMTP (MailHog en local, relay en producción).
type SMTPSender struct {
	dialer *gomail.Dialer
}

// NewSMTPSender construye el sender. Sin usuario no se intenta AUTH.
func NewSMTPSender(host string, port int, user, password string) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(host, port, user, password)}
}

// Send arma el MIME multipart (texto + HTML) y lo envía.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}
