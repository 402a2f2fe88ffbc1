package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Inventario-app/internal/application/auth"
	"github.com/jhoicas/Inventario-app/internal/application/inventory"
	"github.com/jhoicas/Inventario-app/internal/application/usecase"
	"github.com/jhoicas/Inventario-app/internal/domain"
	"github.com/jhoicas/Inventario-app/internal/domain/repository"
	"github.com/jhoicas/Inventario-app/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-app/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-app/internal/interfaces/http"
	"github.com/jhoicas/Inventario-app/pkg/config"
	"github.com/jhoicas/Inventario-app/pkg/logger"
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
		Str("storage", cfg.DB.Storage).
		Msg("iniciando API de referencia")

	if cfg.JWT.Secret == "" {
		if cfg.App.Env == "production" {
			log.Fatal().Msg("JWT_SECRET requerido en production")
		}
		cfg.JWT.Secret = "dev-secret-inventario"
		log.Warn().Msg("JWT_SECRET vacío, usando secreto de desarrollo")
	}

	ctx := context.Background()

	var (
		productRepo repository.ProductRepository
		userRepo    repository.UserRepository
		ledger      repository.StockLedger
	)
	switch cfg.DB.Storage {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración")
		}
		productRepo = postgres.NewProductRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		ledger = postgres.NewTxRunner(pool)
		if err := seedProducts(ctx, productRepo); err != nil {
			log.Fatal().Err(err).Msg("sembrar productos")
		}
	default:
		products := memory.NewProductRepository(inventory.SeedProducts()...)
		productRepo = products
		ledger = products
		userRepo = memory.NewUserRepository()
	}

	authUC := usecase.NewAuthUseCase(userRepo, usecase.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	for _, u := range auth.MockUsers() {
		_, err := authUC.RegisterUser(ctx, u, cfg.Mock.SeedPassword)
		switch {
		case err == nil:
			log.Info().Str("email", u.Email).Str("permission", u.Permission.String()).Msg("usuario sembrado")
		case errors.Is(err, domain.ErrEmailAlreadyExists):
		default:
			log.Fatal().Err(err).Str("email", u.Email).Msg("sembrar usuario")
		}
	}

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
		Title:    "Inventario API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  usecase.NewProductUseCase(productRepo),
		MovementUC: usecase.NewMovementUseCase(ledger),
		Metrics:    httpRouter.NewMetrics(),
		JWTSecret:  cfg.JWT.Secret,
		AppName:    cfg.App.Name,
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

// seedProducts carga el catálogo inicial solo si la tabla está vacía.
func seedProducts(ctx context.Context, repo repository.ProductRepository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, p := range inventory.SeedProducts() {
		p := p
		if err := repo.Create(ctx, &p); err != nil {
			return err
		}
	}
	return nil
}
