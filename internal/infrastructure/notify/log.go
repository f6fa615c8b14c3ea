package notify

import (
	"context"

	"github.com/jhoicas/delivery-accounts/pkg/logger"
)

// LogSender no entrega nada: registra el mensaje (desarrollo).
type LogSender struct {
	log *logger.Logger
}

// NewLogSender construye el sender.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log.Named("mail")}
}

// Send registra destinatario, asunto y cuerpo de texto.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("tag", msg.Tag).
		Str("body", msg.Text).
		Msg("correo (no enviado)")
	return nil
}
