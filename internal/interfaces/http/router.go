package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/proveedores-api/internal/application/auth"
	"github.com/jhoicas/proveedores-api/internal/application/authz"
	"github.com/jhoicas/proveedores-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	SupplierUC *usecase.SupplierUseCase
	Engine     *authz.Engine
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)

	// Suppliers: el listado es público (como en el sistema legado); el resto
	// requiere Bearer token y el borrado además la política ExcluirFornecedor.
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := app.Group("/suppliers")
	suppliers.Get("/", supplierHandler.List)

	protected := suppliers.Group("/", AuthMiddleware(deps.Engine))
	protected.Get("/:id", supplierHandler.GetByID)
	protected.Post("/", supplierHandler.Create)
	protected.Put("/:id", supplierHandler.Update)

	suppliers.Delete("/:id",
		RequirePolicy(deps.Engine, authz.PolicyDeleteSupplier),
		supplierHandler.Delete,
	)
}
