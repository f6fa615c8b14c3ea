package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/delivery-accounts/internal/application/account"
)

var _ account.PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher implementa account.PasswordHasher con bcrypt (salt incluido en el digest).
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher construye el hasher. Un costo fuera de rango usa bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash devuelve el digest bcrypt del password.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashear password: %w", err)
	}
	return string(hash), nil
}

// Matches compara el password contra el digest; un digest malformado devuelve false.
func (h *BcryptHasher) Matches(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
