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
	appkardex "github.com/jcastaneda/kardex-api/internal/application/kardex"
	"github.com/jcastaneda/kardex-api/internal/application/usecase"
	infrapdf "github.com/jcastaneda/kardex-api/internal/infrastructure/pdf"
	"github.com/jcastaneda/kardex-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcastaneda/kardex-api/internal/interfaces/http"
	"github.com/jcastaneda/kardex-api/pkg/config"
	"github.com/jcastaneda/kardex-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	movementRepo := postgres.NewMovementRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	createUC := appkardex.NewCreateMovementUseCase(txRunner, warehouseRepo)
	editUC := appkardex.NewEditMovementUseCase(txRunner, warehouseRepo)
	authorizeUC := appkardex.NewAuthorizeMovementUseCase(txRunner)
	cancelUC := appkardex.NewCancelMovementUseCase(txRunner)
	queryUC := appkardex.NewMovementQueryUseCase(movementRepo, stockRepo)

	// PDF: comprobante imprimible del movimiento
	pdfGenerator := infrapdf.NewMarotoVoucherGenerator()
	voucherUC := appkardex.NewVoucherUseCase(movementRepo, warehouseRepo, pdfGenerator)

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
		Title:    "Kardex API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC: warehouseUC,
		Create:      createUC,
		Edit:        editUC,
		Authorize:   authorizeUC,
		Cancel:      cancelUC,
		Query:       queryUC,
		Voucher:     voucherUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	httpLog := log.Component("http")
	go func() {
		httpLog.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor HTTP finalizado")
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
