package notify

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/delivery-accounts/internal/application/account"
	"github.com/jhoicas/delivery-accounts/pkg/logger"
)

var _ account.Notifier = (*AsyncNotifier)(nil)

// mailer es lo que AsyncNotifier despacha en segundo plano (lo implementa *Mailer).
type mailer interface {
	SendVerification(ctx context.Context, email, code string) error
	SendVerified(ctx context.Context, email string) error
}

// AsyncNotifier implementa account.Notifier sin bloquear al llamador: cada envío corre
// en su propia goroutine con timeout y los fallos solo se registran. Sin reintentos.
type AsyncNotifier struct {
	mailer  mailer
	timeout time.Duration
	log     *logger.Logger
	wg      sync.WaitGroup
}

// NewAsyncNotifier construye el notifier. timeout <= 0 usa 10s.
func NewAsyncNotifier(m mailer, timeout time.Duration, log *logger.Logger) *AsyncNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AsyncNotifier{mailer: m, timeout: timeout, log: log.Named("notify")}
}

// SendVerification despacha el correo de verificación. Siempre devuelve nil.
func (n *AsyncNotifier) SendVerification(ctx context.Context, email, code string) error {
	n.dispatch(ctx, TagVerifyEmail, email, func(ctx context.Context) error {
		return n.mailer.SendVerification(ctx, email, code)
	})
	return nil
}

// SendVerified despacha el correo de confirmación. Siempre devuelve nil.
func (n *AsyncNotifier) SendVerified(ctx context.Context, email string) error {
	n.dispatch(ctx, TagEmailVerified, email, func(ctx context.Context) error {
		return n.mailer.SendVerified(ctx, email)
	})
	return nil
}

// Wait bloquea hasta que terminen los envíos en curso (apagado ordenado).
func (n *AsyncNotifier) Wait() {
	n.wg.Wait()
}

func (n *AsyncNotifier) dispatch(ctx context.Context, tag, email string, send func(context.Context) error) {
	// El envío sobrevive a la cancelación de la petición que lo originó.
	base := context.WithoutCancel(ctx)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				n.log.Error().Interface("panic", r).Str("tag", tag).Str("to", email).Msg("panic en envío")
			}
		}()
		ctx, cancel := context.WithTimeout(base, n.timeout)
		defer cancel()
		if err := send(ctx); err != nil {
			n.log.Warn().Err(err).Str("tag", tag).Str("to", email).Msg("entrega fallida")
			return
		}
		n.log.Debug().Str("tag", tag).Str("to", email).Msg("correo enviado")
	}()
}
