package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	appalerts "github.com/jhoicas/despensa-api/internal/application/alerts"
	"github.com/jhoicas/despensa-api/internal/application/analytics"
	"github.com/jhoicas/despensa-api/internal/application/backup"
	"github.com/jhoicas/despensa-api/internal/application/inventory"
	"github.com/jhoicas/despensa-api/internal/application/ledger"
	"github.com/jhoicas/despensa-api/internal/application/scan"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
	"github.com/jhoicas/despensa-api/internal/infrastructure/kv"
	httpRouter "github.com/jhoicas/despensa-api/internal/interfaces/http"
	"github.com/jhoicas/despensa-api/pkg/config"
	"github.com/jhoicas/despensa-api/pkg/logger"
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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	backend, cleanup, err := buildBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("backend de almacenamiento")
	}
	defer cleanup()

	store := ledger.New(backend, log)
	if err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar el libro")
	}

	inventoryUC := inventory.New(store, log)
	alertsUC := appalerts.New(store, log)
	backupUC := backup.New(store, log)
	dashboardUC := analytics.NewDashboardUseCase(store)

	debouncer := scan.NewDebouncer(cfg.Scanner.Cooldown(), cfg.Scanner.ProcessingTimeout(), nil)
	scanSvc := scan.NewService(debouncer, store, inventoryUC, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:       store,
		InventoryUC: inventoryUC,
		AlertsUC:    alertsUC,
		ScanSvc:     scanSvc,
		BackupUC:    backupUC,
		DashboardUC: dashboardUC,
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

	scanSvc.Reset()
	log.Info().Msg("aplicación detenida")
}

// buildBackend arma el backend clave-valor según STORAGE_DRIVER.
func buildBackend(ctx context.Context, cfg *config.Config) (repository.KVStore, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres":
		if err := kv.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, nil, err
		}
		pool, err := kv.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewPostgres(pool), pool.Close, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		return kv.NewRedis(client), func() { _ = client.Close() }, nil
	default:
		return kv.NewMemory(), func() {}, nil
	}
}
