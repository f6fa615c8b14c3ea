package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender entrega vía la API v3 de SendGrid.
type SendGridSender struct {
	client *sendgrid.Client
}

// NewSendGridSender construye el sender con la API key.
func NewSendGridSender(apiKey string) *SendGridSender {
	return &SendGridSender{client: sendgrid.NewSendClient(apiKey)}
}

// Send envía el mensaje; cualquier status >= 300 es un fallo.
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewSingleEmail(mail.NewEmail("", msg.From), msg.Subject, mail.NewEmail("", msg.To), msg.Text, msg.HTML)
	if msg.Tag != "" {
		m.AddCategories(msg.Tag)
	}
	res, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
