// Package notify entrega los correos del flujo de verificación.
package notify

import "context"

// Message correo ya renderizado.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
	Tag     string // categoría para el proveedor (verify-email, email-verified)
}

// Sender proveedor de correo (SMTP, Postmark, SendGrid, log).
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
