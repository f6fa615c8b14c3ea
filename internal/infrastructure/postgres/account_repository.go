package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/delivery-accounts/internal/domain"
	"github.com/jhoicas/delivery-accounts/internal/domain/entity"
	"github.com/jhoicas/delivery-accounts/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountColumns = `id, email, password_hash, role, verified, created_at, updated_at`

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL (pool o tx).
type AccountRepo struct {
	q Querier
	// lockRows: GetByID toma el lock de fila (SELECT ... FOR UPDATE). Solo dentro de una tx.
	lockRows bool
}

// NewAccountRepository construye el adaptador de persistencia para cuentas. Pasar pool o tx.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create persiste una cuenta nueva. La restricción única de email se traduce a ErrAccountExists.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Email, a.PasswordHash, string(a.Role), a.Verified, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && constraintName(err) != "accounts_pkey" {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID. Un ID que no es UUID no puede existir: (nil, nil).
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	if r.lockRows {
		query += ` FOR UPDATE`
	}
	a, err := scanAccount(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get account by id: %w", err)
	}
	return a, nil
}

// GetByEmail obtiene una cuenta por email exacto.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	a, err := scanAccount(r.q.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return a, nil
}

// Update guarda todos los campos mutables; role y created_at no se tocan.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	query := `
		UPDATE accounts SET email = $2, password_hash = $3, verified = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, a.ID, a.Email, a.PasswordHash, a.Verified, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update account: %s no existe", a.ID)
	}
	return nil
}

// scanAccount devuelve (nil, nil) si no hay filas.
func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	var role string
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &role, &a.Verified, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a.Role = entity.Role(role)
	return &a, nil
}
