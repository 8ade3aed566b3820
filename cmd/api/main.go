package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/proveedores-api/internal/application/auth"
	"github.com/jhoicas/proveedores-api/internal/application/authz"
	"github.com/jhoicas/proveedores-api/internal/application/usecase"
	"github.com/jhoicas/proveedores-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/proveedores-api/internal/interfaces/http"
	"github.com/jhoicas/proveedores-api/pkg/config"
	"github.com/jhoicas/proveedores-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Sin secret de firma no se arranca: emitir tokens que nadie puede
	// verificar es peor que no servir tráfico.
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET no configurado")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	identityRepo := postgres.NewIdentityRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)

	authUC := auth.NewAuthUseCase(identityRepo, auth.Config{
		JWTSecret:       cfg.JWT.Secret,
		JWTIssuer:       cfg.JWT.Issuer,
		TokenLifetime:   cfg.JWT.Lifetime(),
		PasswordMinLen:  cfg.Auth.PasswordMinLen,
		LockoutAttempts: cfg.Auth.LockoutAttempts,
		LockoutWindow:   cfg.Auth.LockoutWindowDuration(),
		LockoutDuration: cfg.Auth.LockoutDuration(),
	})
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	engine := authz.DefaultEngine(cfg.JWT.Secret)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		SupplierUC: supplierUC,
		Engine:     engine,
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

	log.Info().Msg("aplicación detenida")
}
