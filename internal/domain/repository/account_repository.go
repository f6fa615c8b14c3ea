package repository

import (
	"context"

	"github.com/jhoicas/delivery-accounts/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// Las lecturas devuelven (nil, nil) cuando el registro no existe.
type AccountRepository interface {
	// Create persiste una cuenta nueva. Devuelve domain.ErrAccountExists si el email ya está tomado.
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	// Update guarda la entidad completa (nunca un parche parcial).
	Update(ctx context.Context, account *entity.Account) error
}
