package repository

import (
	"context"

	"github.com/jhoicas/delivery-accounts/internal/domain/entity"
)

// VerificationRepository define el puerto de persistencia para Verification.
type VerificationRepository interface {
	Create(ctx context.Context, v *entity.Verification) error
	// GetByCode busca por código exacto e incluye la cuenta dueña. (nil, nil) si no existe.
	GetByCode(ctx context.Context, code string) (*entity.Verification, error)
	// Delete elimina por ID e indica si había algo que borrar.
	Delete(ctx context.Context, id string) (bool, error)
	// DeleteByAccount invalida todos los códigos pendientes de una cuenta.
	DeleteByAccount(ctx context.Context, accountID string) (int64, error)
}
