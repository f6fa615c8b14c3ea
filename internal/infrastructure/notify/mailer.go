package notify

import (
	"context"
	"fmt"
	"html"
	"net/url"
)

// Etiquetas de mensaje.
const (
	TagVerifyEmail   = "verify-email"
	TagEmailVerified = "email-verified"
)

// Mailer arma los correos de verificación y los entrega con un Sender.
type Mailer struct {
	sender    Sender
	from      string
	verifyURL string
}

// NewMailer construye el Mailer. verifyURL es la página del frontend que recibe ?code=.
func NewMailer(sender Sender, from, verifyURL string) *Mailer {
	return &Mailer{sender: sender, from: from, verifyURL: verifyURL}
}

// SendVerification envía el código de verificación a la dirección indicada.
func (m *Mailer) SendVerification(ctx context.Context, email, code string) error {
	link := m.verifyLink(code)
	msg := Message{
		From:    m.from,
		To:      email,
		Subject: "Verifica tu email",
		HTML: fmt.Sprintf(
			`<h2>Verifica tu email</h2><p>Hola %s,</p><p>Tu código: <b>%s</b></p><p><a href="%s">Verificar email</a></p>`,
			html.EscapeString(email), html.EscapeString(code), html.EscapeString(link)),
		Text: fmt.Sprintf("Hola %s,\n\nTu código de verificación: %s\n%s\n", email, code, link),
		Tag:  TagVerifyEmail,
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("enviar verificación a %s: %w", email, err)
	}
	return nil
}

// SendVerified confirma que el email quedó verificado.
func (m *Mailer) SendVerified(ctx context.Context, email string) error {
	msg := Message{
		From:    m.from,
		To:      email,
		Subject: "Tu email fue verificado",
		HTML:    fmt.Sprintf(`<h2>Email verificado</h2><p>Hola %s, tu cuenta ya está verificada.</p>`, html.EscapeString(email)),
		Text:    fmt.Sprintf("Hola %s, tu cuenta ya está verificada.\n", email),
		Tag:     TagEmailVerified,
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("enviar confirmación a %s: %w", email, err)
	}
	return nil
}

func (m *Mailer) verifyLink(code string) string {
	u, err := url.Parse(m.verifyURL)
	if err != nil || m.verifyURL == "" {
		return "?code=" + url.QueryEscape(code)
	}
	q := u.Query()
	q.Set("code", code)
	u.RawQuery = q.Encode()
	return u.String()
}
