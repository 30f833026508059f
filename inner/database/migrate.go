package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"empdir/inner/common"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrator применяет встроенные в бинарник миграции схемы
type Migrator struct {
	provider *goose.Provider
	logger   *common.Logger
}

func NewMigrator(db *sqlx.DB, logger *common.Logger) (*Migrator, error) {
	dialect, err := gooseDialect(db.DriverName())
	if err != nil {
		return nil, err
	}

	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db.DB, migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return &Migrator{provider: provider, logger: logger}, nil
}

func gooseDialect(driverName string) (goose.Dialect, error) {
	switch driverName {
	case DriverPostgres, DriverPgx:
		return goose.DialectPostgres, nil
	case DriverSqlite:
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported database driver for migrations: %s", driverName)
	}
}

// Up накатывает все ещё не применённые миграции
func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	m.logResults(results)
	if err != nil {
		m.logger.Error("Failed to apply migrations", zap.Error(err))
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	m.logger.Info("Migrations applied", zap.Int("count", len(results)))
	return nil
}

// Down откатывает последнюю применённую миграцию
func (m *Migrator) Down(ctx context.Context) error {
	result, err := m.provider.Down(ctx)
	if result != nil {
		m.logResults([]*goose.MigrationResult{result})
	}
	if err != nil {
		m.logger.Error("Failed to roll back migration", zap.Error(err))
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

type MigrationState struct {
	Version int64
	Path    string
	Applied bool
}

func (m *Migrator) Status(ctx context.Context) ([]MigrationState, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}
	states := make([]MigrationState, 0, len(statuses))
	for _, status := range statuses {
		states = append(states, MigrationState{
			Version: status.Source.Version,
			Path:    status.Source.Path,
			Applied: status.State == goose.StateApplied,
		})
	}
	return states, nil
}

func (m *Migrator) logResults(results []*goose.MigrationResult) {
	for _, result := range results {
		if result == nil || result.Source == nil {
			continue
		}
		m.logger.Info("Migration step",
			zap.Int64("version", result.Source.Version),
			zap.String("path", result.Source.Path),
			zap.String("direction", result.Direction),
			zap.Duration("duration", result.Duration))
	}
}

// Migrate - сокращение для старта сервера: подключились и сразу накатили схему
func Migrate(ctx context.Context, db *sqlx.DB, logger *common.Logger) error {
	migrator, err := NewMigrator(db, logger)
	if err != nil {
		return err
	}
	return migrator.Up(ctx)
}
