package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AccountUC AccountService
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	accountHandler := NewAccountHandler(deps.AccountUC)

	// Públicas
	api.Post("/auth/login", accountHandler.Login)
	api.Post("/accounts", accountHandler.Create)
	api.Post("/accounts/verify-email", accountHandler.VerifyEmail)

	// Protegidas (requieren Bearer Token)
	auth := AuthMiddleware(deps.JWTSecret)
	api.Get("/accounts/:id", auth, accountHandler.GetByID)
	api.Get("/me", auth, accountHandler.Me)
	api.Patch("/me", auth, accountHandler.EditProfile)
}
