package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/despacho-pro/internal/application/auth"
	"github.com/tu-usuario/despacho-pro/internal/application/dispatch"
	"github.com/tu-usuario/despacho-pro/internal/application/product"
	"github.com/tu-usuario/despacho-pro/internal/application/sales"
	"github.com/tu-usuario/despacho-pro/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	DispatchUC *dispatch.UseCase
	SalesUC    *sales.UseCase
	ProductUC  *product.UseCase
	PDF        *pdf.DeliveryNoteGenerator
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)

	// Sales orders (protegido)
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/:id/remaining", salesHandler.Remaining)
	salesGroup.Patch("/:id/production-completed", salesHandler.MarkProductionCompleted)
	salesGroup.Patch("/:id/direct-dispatch", salesHandler.DirectDispatch)
	salesGroup.Get("/:id", salesHandler.GetByID)

	// Dispatches (protegido). Las rutas fijas van antes que /:id.
	dispatches := protected.Group("/dispatches")
	dispatchHandler := NewDispatchHandler(deps.DispatchUC, deps.PDF)
	dispatches.Post("/", dispatchHandler.Create)
	dispatches.Get("/", dispatchHandler.List)
	dispatches.Get("/stats", dispatchHandler.Stats)
	dispatches.Get("/order/:salesOrderId/qty", dispatchHandler.QtyByOrder)
	dispatches.Get("/:id/delivery-note", dispatchHandler.DeliveryNote)
	dispatches.Get("/:id", dispatchHandler.GetByID)
	dispatches.Put("/:id", dispatchHandler.Update)
	dispatches.Delete("/:id", dispatchHandler.Delete)
}
