package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastaneda/kardex-api/internal/application/kardex"
	"github.com/jcastaneda/kardex-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC *usecase.WarehouseUseCase
	Create      *kardex.CreateMovementUseCase
	Edit        *kardex.EditMovementUseCase
	Authorize   *kardex.AuthorizeMovementUseCase
	Cancel      *kardex.CancelMovementUseCase
	Query       *kardex.MovementQueryUseCase
	Voucher     *kardex.VoucherUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Inventory movements (protegido; autorizar/cancelar requieren rol)
	invGroup := protected.Group("/inventory")
	movementHandler := NewMovementHandler(deps.Create, deps.Edit, deps.Authorize, deps.Cancel, deps.Query, deps.Voucher)
	invGroup.Post("/movements", movementHandler.Create)
	invGroup.Get("/movements", movementHandler.List)
	invGroup.Get("/movements/:id", movementHandler.GetByID)
	invGroup.Put("/movements/:id", movementHandler.Edit)
	invGroup.Get("/movements/:id/pdf", movementHandler.Voucher)
	invGroup.Post("/movements/:id/authorize", RequireRole("admin", "bodeguero"), movementHandler.Authorize)
	invGroup.Post("/movements/:id/cancel", RequireRole("admin", "bodeguero"), movementHandler.Cancel)
	invGroup.Get("/stock", movementHandler.GetStock)
}
