package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fruver-pos/internal/application/auth"
	"github.com/tu-usuario/fruver-pos/internal/application/cashbox"
	"github.com/tu-usuario/fruver-pos/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *inventory.ProductUseCase
	LotUC        *inventory.LotUseCase
	AdjustmentUC *inventory.AdjustmentUseCase
	PurchaseUC   *inventory.PurchaseUseCase
	ConsumeSale  *inventory.ConsumeSaleUseCase
	DailyFlowUC  *cashbox.DailyFlowUseCase
	CloseCashUC  *cashbox.CloseCashUseCase
	ExpenseUC    *cashbox.ExpenseUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
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
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Lots, ajustes y overview (protegido)
	inventoryHandler := NewInventoryHandler(deps.LotUC, deps.AdjustmentUC, deps.PurchaseUC)
	products.Get("/:id/lots", inventoryHandler.ListLots)
	lots := protected.Group("/lots")
	lots.Post("/", inventoryHandler.CreateLot)
	lots.Post("/:id/adjustments", inventoryHandler.AdjustLot)
	lots.Get("/:id/adjustments", inventoryHandler.ListAdjustments)
	protected.Get("/inventory/overview", inventoryHandler.Overview)

	// Purchases (protegido)
	protected.Post("/purchases", inventoryHandler.CreatePurchase)

	// Sales (protegido)
	salesHandler := NewSalesHandler(deps.ConsumeSale)
	protected.Post("/sales", salesHandler.CreateSale)

	// Cash (protegido; el cierre además exige un segundo usuario en el body)
	cashHandler := NewCashHandler(deps.DailyFlowUC, deps.CloseCashUC, deps.ExpenseUC)
	cash := protected.Group("/cash")
	cash.Get("/daily-flow", cashHandler.DailyFlow)
	cash.Post("/close", cashHandler.CloseCash)
	protected.Post("/expenses", cashHandler.CreateExpense)
}
