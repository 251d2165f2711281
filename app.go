package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"artisan/internal/catalog"
	"artisan/internal/handlers"
	"artisan/internal/middleware"
	"artisan/internal/repositories"
	"artisan/internal/services"
	"artisan/internal/session"
	"artisan/internal/validation"
	"artisan/pkg/config"
	"artisan/pkg/logger"
	"artisan/pkg/rabbitmq"
	"artisan/pkg/response"
	"artisan/pkg/storage"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const sweepInterval = time.Minute

// application is the wired server: backends, services and the Fiber app.
type application struct {
	cfg      *config.Config
	app      *fiber.App
	sessions *session.Manager
	mq       *rabbitmq.Client
	db       *gorm.DB
	closers  []func() error
}

// newApplication builds every dependency named by cfg. Close releases them.
func newApplication(cfg *config.Config) (*application, error) {
	a := &application{cfg: cfg}

	store, err := a.openStorage()
	if err != nil {
		a.Close()
		return nil, err
	}

	productRepo, err := a.openCatalog()
	if err != nil {
		a.Close()
		return nil, err
	}
	catalogService, err := services.NewCatalogService(productRepo)
	if err != nil {
		a.Close()
		return nil, err
	}

	// A nil *rabbitmq.Client must not end up inside the interface.
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Warn("RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			a.mq = mqClient
			a.closers = append(a.closers, mqClient.Close)
			publisher = mqClient
		}
	}

	validate := validation.New()
	delays := services.IdentityDelays{
		Login:    cfg.LoginDelay,
		Register: cfg.RegisterDelay,
		Update:   cfg.ProfileDelay,
	}
	a.sessions = session.NewManager(store, func(ctx context.Context, s *storage.Store) *services.IdentityStore {
		return services.NewIdentityStore(ctx, s, validate, services.RealSleep, delays)
	}, cfg.SessionTTL, sweepInterval)

	orderRepo := repositories.NewMockOrderRepository()
	checkoutService := services.NewCheckoutService(orderRepo, publisher, validate, services.RealSleep, cfg.CheckoutDelay)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)

	app := fiber.New(fiber.Config{
		AppName:      "artisan",
		ErrorHandler: response.ErrorHandler,
	})
	app.Use(fiberlogger.New()) // Request logger

	apiV1 := app.Group("/api/v1")
	handlers.NewSessionHandler(a.sessions, tokens).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.SessionRequired(tokens, a.sessions))
	handlers.NewCatalogHandler(catalogService).RegisterRoutes(protected)
	handlers.NewCartHandler(catalogService, validate).RegisterRoutes(protected)
	handlers.NewAuthHandler().RegisterRoutes(protected)
	handlers.NewCheckoutHandler(checkoutService).RegisterRoutes(protected)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"storage":          cfg.StorageDriver,
			"storageAvailable": store.Available(),
			"catalog":          catalogService.Count(),
			"sessions":         a.sessions.Len(),
			"rabbitmq":         a.mq != nil,
		})
	})

	a.app = app
	return a, nil
}

// startConsumer logs a confirmation for every order event on the queue.
func (a *application) startConsumer() {
	if a.mq == nil {
		return
	}
	logger.Info("Starting RabbitMQ consumer for %s", rabbitmq.OrderQueue)
	if err := a.mq.ConsumeOrderEvents(rabbitmq.HandleOrderMessage); err != nil {
		logger.Warn("Failed to start RabbitMQ consumer: %v", err)
	}
}

// Close shuts the HTTP app down and releases every backend, newest first.
func (a *application) Close() {
	if a.app != nil {
		if err := a.app.Shutdown(); err != nil {
			logger.Warn("Error during Fiber shutdown: %v", err)
		}
		a.app = nil
	}
	if a.sessions != nil {
		a.sessions.Close()
		a.sessions = nil
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("Error releasing backend: %v", err)
		}
	}
	a.closers = nil
}

func (a *application) openStorage() (*storage.Store, error) {
	switch strings.ToLower(a.cfg.StorageDriver) {
	case "", "memory":
		return storage.New(storage.NewMemoryBackend()), nil
	case "none":
		logger.Warn("Storage disabled; identities will not persist")
		return storage.Unavailable(), nil
	case "redis":
		backend, err := storage.NewRedisBackend(a.cfg.RedisURL, "artisan:")
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, backend.Close)
		return storage.New(backend), nil
	case "sqlite", "postgres":
		db, err := a.openDatabase(strings.ToLower(a.cfg.StorageDriver))
		if err != nil {
			return nil, err
		}
		backend, err := storage.NewGORMBackend(db)
		if err != nil {
			return nil, err
		}
		return storage.New(backend), nil
	}
	return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", a.cfg.StorageDriver)
}

func (a *application) openCatalog() (repositories.ProductRepository, error) {
	return openCatalog(a.cfg, a.openDatabase)
}

// openCatalog returns a product repository holding the seed catalog.
func openCatalog(cfg *config.Config, openDB func(dialect string) (*gorm.DB, error)) (repositories.ProductRepository, error) {
	var repo repositories.ProductRepository
	switch strings.ToLower(cfg.CatalogDriver) {
	case "", "memory":
		repo = repositories.NewMockProductRepository()
	case "gorm":
		db, err := openDB(dialectOf(cfg.DatabaseDSN))
		if err != nil {
			return nil, err
		}
		gormRepo := repositories.NewGORMProductRepository(db)
		if err := gormRepo.Migrate(); err != nil {
			return nil, err
		}
		repo = gormRepo
	default:
		return nil, fmt.Errorf("unknown CATALOG_DRIVER %q", cfg.CatalogDriver)
	}

	products := catalog.Products()
	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			return nil, fmt.Errorf("failed to seed product %s: %w", products[i].ID, err)
		}
	}
	logger.Debug("Seeded %d products into %s catalog", len(products), cfg.CatalogDriver)
	return repo, nil
}

// openDatabase opens the shared database once; storage and catalog reuse it.
func (a *application) openDatabase(dialect string) (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := openDatabase(dialect, a.cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}
	a.db = db
	return db, nil
}

func openDatabase(dialect, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dialect {
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", dialect, err)
	}
	return db, nil
}

// dialectOf guesses the database from the DSN shape.
func dialectOf(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}
