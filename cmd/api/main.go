package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/uips-online/edutrack-api/internal/application/auth"
	"github.com/uips-online/edutrack-api/internal/application/dashboard"
	"github.com/uips-online/edutrack-api/internal/application/inventory"
	"github.com/uips-online/edutrack-api/internal/application/ledger"
	"github.com/uips-online/edutrack-api/internal/application/report"
	"github.com/uips-online/edutrack-api/internal/infrastructure/postgres"
	httpRouter "github.com/uips-online/edutrack-api/internal/interfaces/http"
	"github.com/uips-online/edutrack-api/pkg/config"
	"github.com/uips-online/edutrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
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

	itemRepo := postgres.NewItemRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	checkoutRepo := postgres.NewCheckoutRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	seqRepo := postgres.NewSequenceRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewUseCase(txRunner, deliveryRepo, checkoutRepo, returnRepo)
	inventoryUC := inventory.NewUseCase(txRunner, itemRepo, deliveryRepo, seqRepo, log.Component("inventory"))
	reportUC := report.NewUseCase(itemRepo, deliveryRepo, checkoutRepo, returnRepo, reportRepo)
	dashboardUC := dashboard.NewUseCase(reportRepo, deliveryRepo, checkoutRepo)
	authUC := auth.NewUseCase(userRepo, seqRepo, auth.JWTConfig{
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
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EduTrack API",
	}))

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InventoryUC: inventoryUC,
		LedgerUC:    ledgerUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
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
