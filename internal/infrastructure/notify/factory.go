package notify

import (
	"fmt"

	"github.com/jhoicas/delivery-accounts/pkg/config"
	"github.com/jhoicas/delivery-accounts/pkg/logger"
)

// NewSender elige el proveedor según MAIL_PROVIDER.
func NewSender(cfg config.MailConfig, log *logger.Logger) (Sender, error) {
	switch cfg.Provider {
	case "", config.MailProviderLog:
		return NewLogSender(log), nil
	case config.MailProviderSMTP:
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("SMTP_HOST es requerido para el proveedor smtp")
		}
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword), nil
	case config.MailProviderPostmark:
		if cfg.PostmarkToken == "" {
			return nil, fmt.Errorf("POSTMARK_SERVER_TOKEN es requerido para el proveedor postmark")
		}
		return NewPostmarkSender(cfg.PostmarkToken), nil
	case config.MailProviderSendGrid:
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY es requerido para el proveedor sendgrid")
		}
		return NewSendGridSender(cfg.SendGridAPIKey), nil
	default:
		return nil, fmt.Errorf("proveedor de correo desconocido: %q", cfg.Provider)
	}
}
