package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/delivery-accounts/internal/application/dto"
	"github.com/jhoicas/delivery-accounts/pkg/jwt"
)

// Locals keys para AccountID, Role y el token crudo en Fiber.
const (
	LocalAccountID = "account_id"
	LocalRole      = "role"
	LocalToken     = "token"
)

// AuthMiddleware valida el Bearer Token JWT y deja AccountID y Role en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "token vacío")
		}
		accountID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(LocalAccountID, accountID)
		c.Locals(LocalRole, role)
		c.Locals(LocalToken, tokenString)
		return c.Next()
	}
}

// GetAccountID devuelve el AccountID del contexto (después del middleware de auth).
func GetAccountID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalAccountID).(string)
	return s
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetToken devuelve el bearer token ya validado por el middleware.
func GetToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalToken).(string)
	return s
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{OK: false, Code: code, Message: message})
}
