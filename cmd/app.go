// Package cmd wires configuration, storage, services, and the HTTP server
// into a runnable application.
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"marketplace/api"
	"marketplace/api/admin"
	apifavorite "marketplace/api/favorite"
	"marketplace/api/health"
	apiitem "marketplace/api/item"
	apiorder "marketplace/api/order"
	favoriteapp "marketplace/application/favorite"
	itemapp "marketplace/application/item"
	orderapp "marketplace/application/order"
	"marketplace/config"
	"marketplace/domain/favorite"
	"marketplace/domain/item"
	"marketplace/domain/order"
	"marketplace/domain/shared"
	"marketplace/infrastructure/persistence/memory"
	"marketplace/infrastructure/persistence/mysql"
	"marketplace/infrastructure/persistence/retry"
	"marketplace/pkg/logger"

	"go.uber.org/zap"
)

// App holds the assembled application.
type App struct {
	config *config.Config
	router *api.Router
	sqlDB  *sql.DB // nil in memory mode
}

// NewApp builds the application for the configured storage backend. The
// memory backend exists for development and tests; it carries the same
// locking semantics as MySQL.
func NewApp(cfg *config.Config) (*App, error) {
	var (
		itemRepo     item.Repository
		orderRepo    order.Repository
		favoriteRepo favorite.Repository
		uowFactory   shared.UnitOfWorkFactory
		sqlDB        *sql.DB
	)

	switch cfg.Database.Type {
	case "mysql":
		db, err := mysql.Connect(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := mysql.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		sqlDB, err = db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}

		itemRepo = mysql.NewItemRepository(db)
		orderRepo = mysql.NewOrderRepository(db)
		favoriteRepo = mysql.NewFavoriteRepository(db)
		uowFactory = mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(cfg))

	case "memory":
		store := memory.NewStore()
		itemRepo = memory.NewItemRepository(store)
		orderRepo = memory.NewOrderRepository(store)
		favoriteRepo = memory.NewFavoriteRepository(store)
		uowFactory = memory.NewUnitOfWorkFactory(store)
		logger.Info("Using in-memory persistence layer")

	default:
		return nil, fmt.Errorf("unsupported database type: %q", cfg.Database.Type)
	}

	itemService := itemapp.NewApplicationService(itemRepo, orderRepo, uowFactory)
	orderService := orderapp.NewApplicationService(orderRepo, itemRepo, uowFactory)
	favoriteService := favoriteapp.NewApplicationService(favoriteRepo, itemRepo)

	router := api.NewRouter(
		cfg,
		health.NewController(cfg, sqlDB),
		apiitem.NewController(itemService),
		apiorder.NewController(orderService),
		apifavorite.NewController(favoriteService),
		admin.NewController(itemService),
	)
	router.SetupRoutes()

	return &App{
		config: cfg,
		router: router,
		sqlDB:  sqlDB,
	}, nil
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts down within the
// configured timeout.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:         ":" + a.config.Server.Port,
		Handler:      a.router.GetEngine(),
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("port", a.config.Server.Port),
			zap.String("env", a.config.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigCh:
		logger.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if a.sqlDB != nil {
		if err := a.sqlDB.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}

	logger.Info("Server stopped")
	return nil
}

// GetEngine exposes the gin engine for tests.
func (a *App) GetEngine() http.Handler {
	return a.router.GetEngine()
}
