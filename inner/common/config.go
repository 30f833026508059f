package common

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Общая конфигурация всего приложения
type Config struct {
	DbDriverName   string `env:"DB_DRIVER_NAME" validate:"required,oneof=postgres pgx sqlite"`
	Dsn            string `env:"DB_DSN" validate:"required"`
	AppName        string `env:"APP_NAME" validate:"required"`
	AppVersion     string `env:"APP_VERSION" validate:"required"`
	AppPort        string `env:"APP_PORT" envDefault:"7000" validate:"required,numeric"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"INFO"`
	LogDevelopMode bool   `env:"LOG_DEVELOP_MODE"`
	// заполнять пустую базу демо-сотрудниками при старте сервера
	SeedDemoData bool `env:"SEED_DEMO_DATA"`
}

// Получение конфигурации из .env файла или переменных окружения.
// Переменные окружения имеют приоритет над .env: godotenv.Load не перезаписывает уже заданные.
// При невалидной конфигурации - паника, работать без неё приложение не может.
func GetConfig(envFile string) Config {
	_ = godotenv.Load(envFile)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(fmt.Sprintf("config parse error: %v", err))
	}

	if err := validator.New().Struct(cfg); err != nil {
		panic(fmt.Sprintf("config validation error: %v", err))
	}
	return cfg
}

// адрес, на котором слушает веб-сервер
func (cfg Config) ListenAddr() string {
	return ":" + cfg.AppPort
}
