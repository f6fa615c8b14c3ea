package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/delivery-accounts/internal/application/account"
	"github.com/jhoicas/delivery-accounts/internal/infrastructure/notify"
	"github.com/jhoicas/delivery-accounts/internal/infrastructure/security"
	httpRouter "github.com/jhoicas/delivery-accounts/internal/interfaces/http"
	"github.com/jhoicas/delivery-accounts/pkg/config"
	"github.com/jhoicas/delivery-accounts/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("mail", cfg.Mail.Provider).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	sender, err := notify.NewSender(cfg.Mail, log)
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor de correo")
	}
	notifier := notify.NewAsyncNotifier(
		notify.NewMailer(sender, cfg.Mail.From, cfg.Mail.VerifyURL),
		cfg.Mail.SendTimeout,
		log,
	)

	accountUC := account.NewAccountUseCase(
		store.accounts,
		store.verifications,
		store.tx,
		security.NewBcryptHasher(cfg.Security.BcryptCost),
		security.NewJWTSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration),
		security.NewUUIDCodeGenerator(),
		notifier,
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Delivery Accounts API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AccountUC: accountUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Correos en vuelo antes de cerrar el almacenamiento.
	notifier.Wait()

	log.Info().Msg("aplicación detenida")
}
