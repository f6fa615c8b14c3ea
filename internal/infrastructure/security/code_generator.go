package security

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/delivery-accounts/internal/application/account"
)

var _ account.CodeGenerator = UUIDCodeGenerator{}

// UUIDCodeGenerator genera códigos de verificación como UUID v4 (122 bits aleatorios).
type UUIDCodeGenerator struct{}

// NewUUIDCodeGenerator construye el generador.
func NewUUIDCodeGenerator() UUIDCodeGenerator {
	return UUIDCodeGenerator{}
}

// NewCode devuelve un código nuevo.
func (UUIDCodeGenerator) NewCode() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generar código: %w", err)
	}
	return id.String(), nil
}
