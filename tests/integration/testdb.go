//go:build integration

// Package integration runs the POS backend against a real PostgreSQL
// started with testcontainers. Run with: go test -tags integration ./tests/integration/...
package integration

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/retailpos/backend/internal/infrastructure/migration"
	"github.com/retailpos/backend/migrations"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB represents a migrated test database
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
}

// NewTestDB starts a fresh PostgreSQL container and applies the embedded
// migrations. The container is terminated when the test finishes.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("pos_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	runMigrations(t, dsn)

	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return &TestDB{DB: db, SqlDB: sqlDB, Container: container, DSN: dsn}
}

// runMigrations applies the embedded migrations on a dedicated connection
func runMigrations(t *testing.T, dsn string) {
	t.Helper()

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	m, err := migration.NewFromFS(db, migrations.FS, nil)
	require.NoError(t, err, "Failed to create migrator")
	defer func() { _ = m.Close() }()

	require.NoError(t, m.Up(), "Failed to run migrations")
}

// Count returns the number of rows in table matching the optional condition
func (tdb *TestDB) Count(t *testing.T, table string, where ...any) int64 {
	t.Helper()
	var n int64
	query := tdb.DB.Table(table)
	if len(where) > 0 {
		query = query.Where(where[0], where[1:]...)
	}
	require.NoError(t, query.Count(&n).Error)
	return n
}
