package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"empdir/inner/common"
	"empdir/inner/database"
	"empdir/inner/employee"
	"empdir/inner/info"
	"empdir/inner/validator"
	"empdir/inner/web"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// application - собранный сервис: база, сервер и все контроллеры
type application struct {
	cfg    common.Config
	logger *common.Logger
	db     *sqlx.DB
	server *web.Server
}

// newApplication подключается к базе, применяет миграции и регистрирует маршруты
func newApplication(ctx context.Context, cfg common.Config, logger *common.Logger) (*application, error) {
	db, err := database.ConnectDbWithCfg(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	employeeService := employee.NewService(
		employee.NewEmployeeRepository(db),
		validator.New(),
		logger,
	)

	if cfg.SeedDemoData {
		if _, err := employeeService.Seed(ctx, employee.DemoEmployees()); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	server := web.NewServer(logger)
	employee.NewController(server, employeeService, logger).RegisterRoutes()
	info.NewController(server, cfg, db, logger).RegisterRoutes()

	return &application{
		cfg:    cfg,
		logger: logger,
		db:     db,
		server: server,
	}, nil
}

// run слушает порт до отмены ctx, затем корректно останавливает сервер
func (a *application) run(ctx context.Context) error {
	listenErr := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.cfg.ListenAddr()))
		listenErr <- a.server.App.Listen(a.cfg.ListenAddr())
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("http server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.App.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	if err := <-listenErr; err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Warn("HTTP server returned after shutdown", zap.Error(err))
	}
	return nil
}

func (a *application) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close database connection", zap.Error(err))
	}
	_ = a.logger.Sync()
}
