package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/delivery-accounts/internal/domain/entity"
	"github.com/jhoicas/delivery-accounts/internal/domain/repository"
)

var _ repository.VerificationRepository = (*VerificationRepo)(nil)

// VerificationRepo implementación de VerificationRepository sobre PostgreSQL (pool o tx).
type VerificationRepo struct {
	q Querier
}

// NewVerificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVerificationRepository(q Querier) *VerificationRepo {
	return &VerificationRepo{q: q}
}

// Create persiste un código nuevo.
func (r *VerificationRepo) Create(ctx context.Context, v *entity.Verification) error {
	query := `
		INSERT INTO verifications (id, code, account_id, created_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, v.ID, v.Code, v.AccountID, v.CreatedAt); err != nil {
		return fmt.Errorf("insert verification: %w", err)
	}
	return nil
}

// GetByCode obtiene el código con su cuenta (JOIN).
func (r *VerificationRepo) GetByCode(ctx context.Context, code string) (*entity.Verification, error) {
	query := `
		SELECT v.id, v.code, v.account_id, v.created_at,
		       a.id, a.email, a.password_hash, a.role, a.verified, a.created_at, a.updated_at
		FROM verifications v
		JOIN accounts a ON a.id = v.account_id
		WHERE v.code = $1`
	var v entity.Verification
	var a entity.Account
	var role string
	err := r.q.QueryRow(ctx, query, code).Scan(
		&v.ID, &v.Code, &v.AccountID, &v.CreatedAt,
		&a.ID, &a.Email, &a.PasswordHash, &role, &a.Verified, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get verification by code: %w", err)
	}
	a.Role = entity.Role(role)
	v.Account = &a
	return &v, nil
}

// Delete elimina por ID; false si otra transacción ya lo había borrado.
func (r *VerificationRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM verifications WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete verification: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteByAccount elimina los códigos pendientes de la cuenta.
func (r *VerificationRepo) DeleteByAccount(ctx context.Context, accountID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM verifications WHERE account_id = $1`, accountID)
	if err != nil {
		return 0, fmt.Errorf("delete verifications by account: %w", err)
	}
	return tag.RowsAffected(), nil
}
