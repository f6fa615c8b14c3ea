package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/delivery-accounts/internal/domain/entity"
	"github.com/jhoicas/delivery-accounts/internal/domain/repository"
)

var _ repository.VerificationRepository = (*VerificationRepo)(nil)

// VerificationRepo implementación en memoria de VerificationRepository.
type VerificationRepo struct {
	s *Store
}

// NewVerificationRepository construye el repositorio sobre el Store.
func NewVerificationRepository(s *Store) *VerificationRepo {
	return &VerificationRepo{s: s}
}

// Create guarda el código; rechaza códigos repetidos y cuentas inexistentes.
func (r *VerificationRepo) Create(_ context.Context, v *entity.Verification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.byCode[v.Code]; ok {
		return fmt.Errorf("insert verification: código duplicado")
	}
	if _, ok := r.s.accounts[v.AccountID]; !ok {
		return fmt.Errorf("insert verification: cuenta %s no existe", v.AccountID)
	}
	stored := *v
	stored.Account = nil
	r.s.verifications[v.ID] = stored
	r.s.byCode[v.Code] = v.ID
	return nil
}

// GetByCode devuelve el código junto con una copia de su cuenta.
func (r *VerificationRepo) GetByCode(_ context.Context, code string) (*entity.Verification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.byCode[code]
	if !ok {
		return nil, nil
	}
	v := r.s.verifications[id]
	if a, ok := r.s.accounts[v.AccountID]; ok {
		v.Account = &a
	}
	return &v, nil
}

// Delete elimina por ID.
func (r *VerificationRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.verifications[id]
	if !ok {
		return false, nil
	}
	delete(r.s.verifications, id)
	delete(r.s.byCode, v.Code)
	return true, nil
}

// DeleteByAccount elimina todos los códigos de la cuenta.
func (r *VerificationRepo) DeleteByAccount(_ context.Context, accountID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, v := range r.s.verifications {
		if v.AccountID == accountID {
			delete(r.s.verifications, id)
			delete(r.s.byCode, v.Code)
			n++
		}
	}
	return n, nil
}

// CountByAccount cuántos códigos pendientes tiene la cuenta.
func (r *VerificationRepo) CountByAccount(accountID string) int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, v := range r.s.verifications {
		if v.AccountID == accountID {
			n++
		}
	}
	return n
}
