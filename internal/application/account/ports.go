package account

import (
	"context"

	"github.com/jhoicas/delivery-accounts/internal/domain/repository"
)

// PasswordHasher hash de una vía para contraseñas.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Matches nunca falla: un digest malformado simplemente no coincide.
	Matches(plain, digest string) bool
}

// TokenSigner emite y valida bearer tokens cuyo subject es el ID de la cuenta.
type TokenSigner interface {
	Sign(accountID, role string) (string, error)
	Verify(token string) (accountID string, err error)
}

// CodeGenerator genera códigos de verificación únicos e impredecibles.
type CodeGenerator interface {
	NewCode() (string, error)
}

// Notifier entrega correos de verificación. Es best-effort: el error solo se registra.
type Notifier interface {
	SendVerification(ctx context.Context, email, code string) error
	SendVerified(ctx context.Context, email string) error
}

// TxRunner ejecuta fn con repositorios atados a una misma unidad de trabajo.
// Si fn devuelve error, la implementación descarta los cambios cuando el backend lo permite.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		accounts repository.AccountRepository,
		verifications repository.VerificationRepository,
	) error) error
}
