package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/delivery-accounts/internal/domain"
)

// domainErrors código HTTP y código estable por error de dominio.
var domainErrors = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrAccountExists, fiber.StatusConflict, "ACCOUNT_EXISTS"},
	{domain.ErrAccountNotFound, fiber.StatusNotFound, "ACCOUNT_NOT_FOUND"},
	{domain.ErrVerificationNotFound, fiber.StatusNotFound, "VERIFICATION_NOT_FOUND"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrInvalidToken, fiber.StatusUnauthorized, "INVALID_TOKEN"},
	{domain.ErrInvalidRole, fiber.StatusBadRequest, "INVALID_ROLE"},
}

// writeDomainError traduce un error del use case a la respuesta HTTP.
// Los use cases solo devuelven sentinelas, así que el mensaje es seguro de exponer.
func writeDomainError(c *fiber.Ctx, err error) error {
	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			return fail(c, m.status, m.code, m.err.Error())
		}
	}
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
}
