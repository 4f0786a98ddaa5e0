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

	"github.com/tu-usuario/despacho-pro/internal/application/auth"
	"github.com/tu-usuario/despacho-pro/internal/application/dispatch"
	"github.com/tu-usuario/despacho-pro/internal/application/product"
	"github.com/tu-usuario/despacho-pro/internal/application/sales"
	"github.com/tu-usuario/despacho-pro/internal/infrastructure/cache"
	infrapdf "github.com/tu-usuario/despacho-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/despacho-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/despacho-pro/internal/interfaces/http"
	"github.com/tu-usuario/despacho-pro/pkg/config"
	"github.com/tu-usuario/despacho-pro/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	salesRepo := postgres.NewSalesOrderRepository(pool)
	dispatchRepo := postgres.NewDispatchRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de stats opcional: REDIS_ADDR vacío lo desactiva y stats
	// consulta directo a PostgreSQL.
	var statsCache dispatch.StatsCache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		statsCache = redisCache
	}

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := product.NewUseCase(productRepo)
	salesUC := sales.NewUseCase(salesRepo, dispatchRepo, productRepo, log)
	dispatchUC := dispatch.NewUseCase(txRunner, salesRepo, dispatchRepo, productRepo, statsCache, log)
	pdfGenerator := infrapdf.NewDeliveryNoteGenerator()

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
		Title:    "Despacho Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		DispatchUC: dispatchUC,
		SalesUC:    salesUC,
		ProductUC:  productUC,
		PDF:        pdfGenerator,
		JWTSecret:  cfg.JWT.Secret,
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
