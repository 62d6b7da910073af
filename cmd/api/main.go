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
	"github.com/tu-usuario/fruver-pos/internal/application/auth"
	"github.com/tu-usuario/fruver-pos/internal/application/cashbox"
	"github.com/tu-usuario/fruver-pos/internal/application/inventory"
	"github.com/tu-usuario/fruver-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/fruver-pos/internal/interfaces/http"
	"github.com/tu-usuario/fruver-pos/pkg/config"
	"github.com/tu-usuario/fruver-pos/pkg/logger"
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

	loc, err := cfg.Cash.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de caja")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	sessionRepo := postgres.NewCashSessionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := inventory.NewProductUseCase(productRepo)
	lotUC := inventory.NewLotUseCase(lotRepo, productRepo, inventory.Thresholds{
		LowStock:       cfg.Inventory.LowStockThreshold,
		NearExpiryDays: cfg.Inventory.NearExpiryDays,
	})
	adjustmentUC := inventory.NewAdjustmentUseCase(txRunner, adjustmentRepo, cfg.Inventory.MaxManualAdjustment)
	purchaseUC := inventory.NewPurchaseUseCase(txRunner, productRepo)
	consumeSaleUC := inventory.NewConsumeSaleUseCase(txRunner, productRepo)

	dailyFlowUC := cashbox.NewDailyFlowUseCase(saleRepo, purchaseRepo, expenseRepo, loc)
	authorizer := auth.NewManagerAuthorizer(userRepo)
	closeCashUC := cashbox.NewCloseCashUseCase(txRunner, sessionRepo, authorizer, loc, cfg.Cash.ExactEpsilon)
	expenseUC := cashbox.NewExpenseUseCase(expenseRepo, loc)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Fruver POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		LotUC:        lotUC,
		AdjustmentUC: adjustmentUC,
		PurchaseUC:   purchaseUC,
		ConsumeSale:  consumeSaleUC,
		DailyFlowUC:  dailyFlowUC,
		CloseCashUC:  closeCashUC,
		ExpenseUC:    expenseUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
