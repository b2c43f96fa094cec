package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/application/audit"
	"github.com/jhoicas/inventario-cocina/internal/application/inventory"
	"github.com/jhoicas/inventario-cocina/internal/application/notification"
	"github.com/jhoicas/inventario-cocina/internal/application/snapshot"
	"github.com/jhoicas/inventario-cocina/internal/application/usecase"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventario-cocina/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/rabbitmq"
	httpRouter "github.com/jhoicas/inventario-cocina/internal/interfaces/http"
	"github.com/jhoicas/inventario-cocina/pkg/config"
	"github.com/jhoicas/inventario-cocina/pkg/logger"
)

// repos puertos de persistencia elegidos según STORAGE_DRIVER.
type repos struct {
	ingredients   repository.IngredientRepository
	stocks        repository.StockRepository
	snapshots     repository.SnapshotRepository
	audit         repository.AuditRepository
	notifications repository.NotificationRepository
	tx            snapshot.TxRunner
	close         func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer r.close()

	// Broker opcional para alertas de stock bajo
	var publisher notification.Publisher
	if cfg.Rabbit.Enabled() {
		p, err := rabbitmq.NewAlertPublisher(cfg.Rabbit.URL, cfg.Rabbit.AlertsQueue)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ no disponible, alertas solo en la base")
		} else {
			defer func() { _ = p.Close() }()
			publisher = p
			log.Info().Str("queue", cfg.Rabbit.AlertsQueue).Msg("publicando alertas en RabbitMQ")
		}
	}

	auditRec := audit.NewRecorder(r.audit, log)
	notificationUC := notification.NewUseCase(r.notifications, publisher,
		time.Duration(cfg.Inventory.AlertDedupHours)*time.Hour, log)
	ingredientUC := usecase.NewIngredientUseCase(r.ingredients, auditRec)
	ledgerUC := inventory.NewLedgerUseCase(r.ingredients, r.stocks, auditRec, notificationUC,
		decimal.NewFromInt(int64(cfg.Inventory.DefaultMinimumStock)), log)
	snapshotUC := snapshot.NewUseCase(r.stocks, r.snapshots, r.tx, auditRec,
		infrapdf.NewSnapshotPDFGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:    cfg.App.Name,
		IngredientUC:   ingredientUC,
		LedgerUC:       ledgerUC,
		SnapshotUC:     snapshotUC,
		NotificationUC: notificationUC,
		AuditRecorder:  auditRec,
		JWTSecret:      cfg.JWT.Secret,
		SwaggerFile:    "./docs/swagger.json",
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

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repos, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &repos{
			ingredients:   store.Ingredients(),
			stocks:        store.Stocks(),
			snapshots:     store.Snapshots(),
			audit:         store.Audit(),
			notifications: store.Notifications(),
			tx:            store.TxRunner(),
			close:         func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &repos{
		ingredients:   postgres.NewIngredientRepository(pool),
		stocks:        postgres.NewStockRepository(pool),
		snapshots:     postgres.NewSnapshotRepository(pool),
		audit:         postgres.NewAuditRepository(pool),
		notifications: postgres.NewNotificationRepository(pool),
		tx:            postgres.NewTxRunner(pool),
		close:         pool.Close,
	}, nil
}
