package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/delivery-accounts/internal/domain"
	"github.com/jhoicas/delivery-accounts/internal/domain/entity"
	"github.com/jhoicas/delivery-accounts/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación en memoria de AccountRepository.
type AccountRepo struct {
	s *Store
}

// NewAccountRepository construye el repositorio sobre el Store.
func NewAccountRepository(s *Store) *AccountRepo {
	return &AccountRepo{s: s}
}

// Create guarda la cuenta; el chequeo de email único es atómico bajo el lock.
func (r *AccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.byEmail[account.Email]; ok {
		return domain.ErrAccountExists
	}
	if _, ok := r.s.accounts[account.ID]; ok {
		return fmt.Errorf("insert account: id %s duplicado", account.ID)
	}
	r.s.accounts[account.ID] = *account
	r.s.byEmail[account.Email] = account.ID
	return nil
}

// GetByID obtiene una copia de la cuenta; (nil, nil) si no existe.
func (r *AccountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// GetByEmail obtiene una copia de la cuenta por email exacto.
func (r *AccountRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.byEmail[email]
	if !ok {
		return nil, nil
	}
	a := r.s.accounts[id]
	return &a, nil
}

// Update reemplaza la entidad completa y mantiene el índice de emails.
func (r *AccountRepo) Update(_ context.Context, account *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.accounts[account.ID]
	if !ok {
		return fmt.Errorf("update account: %s no existe", account.ID)
	}
	if prev.Email != account.Email {
		if owner, taken := r.s.byEmail[account.Email]; taken && owner != account.ID {
			return domain.ErrAccountExists
		}
		delete(r.s.byEmail, prev.Email)
		r.s.byEmail[account.Email] = account.ID
	}
	r.s.accounts[account.ID] = *account
	return nil
}
