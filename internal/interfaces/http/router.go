package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-app/internal/application/usecase"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *usecase.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	MovementUC *usecase.MovementUseCase
	Metrics    *Metrics
	JWTSecret  string
	AppName    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/product")
	products.Get("/", RequirePermission(entity.PermissionViewer), productHandler.List)
	products.Post("/create", RequirePermission(entity.PermissionAdmin), productHandler.Create)
	products.Put("/update/:id", RequirePermission(entity.PermissionAdmin), productHandler.Update)
	products.Delete("/delete/:id", RequirePermission(entity.PermissionAdmin), productHandler.Delete)

	txHandler := NewTransactionHandler(deps.MovementUC)
	transactions := protected.Group("/transactions", RequirePermission(entity.PermissionOperator))
	transactions.Post("/entry", txHandler.Entry)
	transactions.Post("/exit", txHandler.Exit)
}
