package database

import (
	"fmt"
	"time"

	"empdir/inner/common"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSqlite   = "sqlite"
)

func init() {
	// modernc регистрирует драйвер как "sqlite", sqlx знает только "sqlite3"
	sqlx.BindDriver(DriverSqlite, sqlx.QUESTION)
}

// Получить конфиг и подключиться с ним к базе данных
func ConnectDb(logger *common.Logger) (*sqlx.DB, error) {
	cfg := common.GetConfig(".env")
	return ConnectDbWithCfg(cfg, logger)
}

// Подключиться к базе данных с переданным конфигом
func ConnectDbWithCfg(cfg common.Config, logger *common.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.DbDriverName, cfg.Dsn)
	if err != nil {
		logger.Error("Failed to connect to database",
			zap.String("driver", cfg.DbDriverName),
			zap.Error(err))
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Database connection established successfully",
		zap.String("driver", cfg.DbDriverName))

	maxIdle, maxOpen := 5, 20
	if IsSqlite(db) {
		// sqlite пишет в один файл, а база ":memory:" живёт только внутри одного соединения
		maxIdle, maxOpen = 1, 1
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	} else {
		db.SetConnMaxLifetime(1 * time.Minute)
		db.SetConnMaxIdleTime(10 * time.Minute)
	}
	db.SetMaxIdleConns(maxIdle)
	db.SetMaxOpenConns(maxOpen)

	logger.Debug("Database connection pool configured",
		zap.Int("maxIdleConns", maxIdle),
		zap.Int("maxOpenConns", maxOpen))

	return db, nil
}

func IsSqlite(db *sqlx.DB) bool {
	return db.DriverName() == DriverSqlite
}

func IsPostgres(db *sqlx.DB) bool {
	return db.DriverName() == DriverPostgres || db.DriverName() == DriverPgx
}
