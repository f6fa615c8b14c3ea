package security

import (
	"github.com/jhoicas/delivery-accounts/internal/application/account"
	"github.com/jhoicas/delivery-accounts/pkg/jwt"
)

var _ account.TokenSigner = (*JWTSigner)(nil)

// JWTSigner adapta pkg/jwt al puerto account.TokenSigner.
type JWTSigner struct {
	secret     string
	issuer     string
	expMinutes int
}

// NewJWTSigner construye el firmador HS256.
func NewJWTSigner(secret, issuer string, expMinutes int) *JWTSigner {
	return &JWTSigner{secret: secret, issuer: issuer, expMinutes: expMinutes}
}

// Sign emite un token para la cuenta.
func (s *JWTSigner) Sign(accountID, role string) (string, error) {
	return jwt.Generate(s.secret, accountID, role, s.issuer, s.expMinutes)
}

// Verify devuelve el ID de la cuenta del token si es válido.
func (s *JWTSigner) Verify(token string) (string, error) {
	accountID, _, err := jwt.Parse(s.secret, token)
	return accountID, err
}
