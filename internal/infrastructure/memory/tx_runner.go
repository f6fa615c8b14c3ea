package memory

import (
	"context"

	"github.com/jhoicas/delivery-accounts/internal/application/account"
	"github.com/jhoicas/delivery-accounts/internal/domain/repository"
)

var _ account.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta unidades de trabajo sobre el Store, una a la vez.
// Si fn falla, el Store vuelve al estado previo.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repositorios del Store y revierte si devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	accounts repository.AccountRepository,
	verifications repository.VerificationRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	snap := r.s.snapshot()
	if err := fn(NewAccountRepository(r.s), NewVerificationRepository(r.s)); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
