package notify

import (
	"context"
	"fmt"

	"github.com/keighl/postmark"
)

// PostmarkSender entrega vía la API de Postmark.
type PostmarkSender struct {
	client *postmark.Client
}

// NewPostmarkSender construye el sender con el server token.
func NewPostmarkSender(serverToken string) *PostmarkSender {
	return &PostmarkSender{client: postmark.NewClient(serverToken, "")}
}

// Send envía el mensaje; un ErrorCode distinto de cero es un fallo.
func (s *PostmarkSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.client.SendEmail(postmark.Email{
		From:     msg.From,
		To:       msg.To,
		Subject:  msg.Subject,
		HtmlBody: msg.HTML,
		TextBody: msg.Text,
		Tag:      msg.Tag,
	})
	if err != nil {
		return fmt.Errorf("postmark: %w", err)
	}
	if res.ErrorCode != 0 {
		return fmt.Errorf("postmark: código %d: %s", res.ErrorCode, res.Message)
	}
	return nil
}
