package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"empdir/inner/common"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testLogger(t *testing.T) *common.Logger {
	return common.WrapLogger(zaptest.NewLogger(t))
}

func connectSqlite(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := ConnectDbWithCfg(common.Config{DbDriverName: DriverSqlite, Dsn: ":memory:"}, testLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestConnectDbWithCfg_Sqlite(t *testing.T) {
	db := connectSqlite(t)

	assert.True(t, IsSqlite(db))
	assert.False(t, IsPostgres(db))
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
	assert.NoError(t, db.PingContext(context.Background()))
}

func TestConnectDbWithCfg_UnknownDriver(t *testing.T) {
	db, err := ConnectDbWithCfg(common.Config{DbDriverName: "mysql", Dsn: "root@/employees"}, testLogger(t))

	assert.Nil(t, db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}

func TestGooseDialect(t *testing.T) {
	tests := []struct {
		driver   string
		expected goose.Dialect
		wantErr  bool
	}{
		{DriverPostgres, goose.DialectPostgres, false},
		{DriverPgx, goose.DialectPostgres, false},
		{DriverSqlite, goose.DialectSQLite3, false},
		{"mysql", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			dialect, err := gooseDialect(tt.driver)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dialect)
		})
	}
}

func TestMigrator_UpStatusDown(t *testing.T) {
	db := connectSqlite(t)
	ctx := context.Background()

	migrator, err := NewMigrator(db, testLogger(t))
	require.NoError(t, err)

	require.NoError(t, migrator.Up(ctx))

	states, err := migrator.Status(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, states)
	for _, state := range states {
		assert.True(t, state.Applied, "migration %s is not applied", state.Path)
	}

	var count int
	require.NoError(t, db.GetContext(ctx, &count, "SELECT COUNT(*) FROM employee"))
	assert.Zero(t, count)

	// повторный Up ничего не делает
	require.NoError(t, migrator.Up(ctx))

	require.NoError(t, migrator.Down(ctx))
	_, err = db.ExecContext(ctx, "SELECT COUNT(*) FROM employee")
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	db := connectSqlite(t)

	require.NoError(t, Migrate(context.Background(), db, testLogger(t)))

	_, err := db.ExecContext(context.Background(),
		"INSERT INTO employee (id, name, job_title, years_with_company, department, salary) VALUES (1, 'A', 'X', 1, 'D', 0)")
	assert.NoError(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23502"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "40001"}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate key")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsUniqueViolation_Sqlite(t *testing.T) {
	db := connectSqlite(t)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, testLogger(t)))

	insert := "INSERT INTO employee (id, name, job_title, years_with_company, department, salary) VALUES (7, 'A', 'X', 1, 'D', 0)"
	_, err := db.ExecContext(ctx, insert)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insert)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	// нарушение NOT NULL - не конфликт ключа
	_, err = db.ExecContext(ctx, "INSERT INTO employee (id, name, job_title, years_with_company, department, salary) VALUES (8, NULL, 'X', 1, 'D', 0)")
	require.Error(t, err)
	assert.False(t, IsUniqueViolation(err))
}
