package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"DB_DRIVER_NAME", "DB_DSN", "APP_NAME", "APP_VERSION", "APP_PORT",
	"LOG_LEVEL", "LOG_DEVELOP_MODE", "SEED_DEMO_DATA",
}

// clearConfigEnv удаляет переменные конфигурации; после теста прежние значения вернутся,
// в том числе если их выставил godotenv из тестового .env
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, name := range configEnvVars {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	envFilePath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFilePath, []byte(content), 0644))
	return envFilePath
}

// panicMessage возвращает сообщение паники из GetConfig
func panicMessage(t *testing.T, envFilePath string) (message string) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "GetConfig must panic")
		var ok bool
		message, ok = r.(string)
		require.True(t, ok, "panic value must be a string")
	}()
	GetConfig(envFilePath)
	return ""
}

func TestGetConfig_NoEnvFile(t *testing.T) {
	clearConfigEnv(t)

	message := panicMessage(t, filepath.Join(t.TempDir(), ".env_not_exists"))

	assert.Contains(t, message, "config validation error")
}

func TestGetConfig_EmptyDotEnv(t *testing.T) {
	clearConfigEnv(t)
	envFilePath := writeEnvFile(t, "")

	assert.Panics(t, func() {
		GetConfig(envFilePath)
	})
}

func TestGetConfig_LoadsFromDotEnv(t *testing.T) {
	clearConfigEnv(t)
	envFilePath := writeEnvFile(t, `
DB_DRIVER_NAME=sqlite
DB_DSN=file:employees.db
APP_NAME=dotenv-app
APP_VERSION=1.5.0
APP_PORT=8080
LOG_LEVEL=DEBUG
LOG_DEVELOP_MODE=true
SEED_DEMO_DATA=true
`)

	cfg := GetConfig(envFilePath)

	assert.Equal(t, "sqlite", cfg.DbDriverName)
	assert.Equal(t, "file:employees.db", cfg.Dsn)
	assert.Equal(t, "dotenv-app", cfg.AppName)
	assert.Equal(t, "1.5.0", cfg.AppVersion)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.True(t, cfg.LogDevelopMode)
	assert.True(t, cfg.SeedDemoData)
}

func TestGetConfig_EnvOverridesDotEnv(t *testing.T) {
	clearConfigEnv(t)
	envFilePath := writeEnvFile(t, `
DB_DRIVER_NAME=sqlite
DB_DSN=file:employees.db
APP_NAME=dotenv-app
APP_VERSION=2.0.0
`)
	t.Setenv("DB_DRIVER_NAME", "postgres")
	t.Setenv("DB_DSN", "host=localhost port=5432 user=postgres password=1234 dbname=employees sslmode=disable")
	t.Setenv("APP_NAME", "env-app")

	cfg := GetConfig(envFilePath)

	assert.Equal(t, "postgres", cfg.DbDriverName)
	assert.Contains(t, cfg.Dsn, "dbname=employees")
	assert.Equal(t, "env-app", cfg.AppName)
	// не заданное в окружении берётся из .env
	assert.Equal(t, "2.0.0", cfg.AppVersion)
}

func TestGetConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_DRIVER_NAME", "pgx")
	t.Setenv("DB_DSN", "postgres://localhost:5432/employees")
	t.Setenv("APP_NAME", "empdir")
	t.Setenv("APP_VERSION", "0.1.0")

	cfg := GetConfig(filepath.Join(t.TempDir(), ".env_not_exists"))

	assert.Equal(t, "7000", cfg.AppPort)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.False(t, cfg.LogDevelopMode)
	assert.False(t, cfg.SeedDemoData)
}

func TestGetConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		variable string
		value    string
		expected string
	}{
		{"unsupported driver", "DB_DRIVER_NAME", "mysql", "config validation error"},
		{"port is not a number", "APP_PORT", "seven", "config validation error"},
		{"bool is not a bool", "LOG_DEVELOP_MODE", "sometimes", "config parse error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv("DB_DRIVER_NAME", "sqlite")
			t.Setenv("DB_DSN", ":memory:")
			t.Setenv("APP_NAME", "empdir")
			t.Setenv("APP_VERSION", "0.1.0")
			t.Setenv(tt.variable, tt.value)

			message := panicMessage(t, filepath.Join(t.TempDir(), ".env_not_exists"))

			assert.Contains(t, message, tt.expected)
		})
	}
}
