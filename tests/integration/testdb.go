// Package integration runs the repositories and the HTTP API against a real
// PostgreSQL started with testcontainers. One container serves the package;
// every test gets its own database migrated with the embedded schema.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/inventory/backend/internal/infrastructure/migration"
	"github.com/inventory/backend/migrations"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const postgresImage = "postgres:16-alpine"

var (
	serverOnce sync.Once
	server     *tcpostgres.PostgresContainer
	serverDSN  string
	serverErr  error
	databases  atomic.Int64
)

// TestDB is a migrated database private to one test
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	Name  string
}

func startServer() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	server, serverErr = tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("postgres"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("inventory123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if serverErr != nil {
		return
	}
	serverDSN, serverErr = server.ConnectionString(ctx, "sslmode=disable")
}

// stopServer terminates the shared container; TestMain calls it last
func stopServer() {
	if server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = server.Terminate(ctx)
}

// NewTestDB creates inventory_test_<n> on the shared server, applies the
// migrations and drops it again when the test ends.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	serverOnce.Do(startServer)
	require.NoError(t, serverErr, "start PostgreSQL container")

	name := fmt.Sprintf("inventory_test_%d", databases.Add(1))
	admin, err := sql.Open("postgres", serverDSN)
	require.NoError(t, err)
	defer admin.Close()
	_, err = admin.Exec("CREATE DATABASE " + name)
	require.NoError(t, err, "create %s", name)

	dsn, err := withDatabase(serverDSN, name)
	require.NoError(t, err)
	db, sqlDB := open(t, dsn)

	m, err := migration.New(sqlDB, migration.Source{FS: migrations.FS}, zap.NewNop())
	require.NoError(t, err, "create migrator")
	require.NoError(t, m.Up(), "apply migrations")

	t.Cleanup(func() {
		_ = sqlDB.Close()
		if admin, err := sql.Open("postgres", serverDSN); err == nil {
			_, _ = admin.Exec("DROP DATABASE IF EXISTS " + name + " WITH (FORCE)")
			_ = admin.Close()
		}
	})
	return &TestDB{DB: db, SqlDB: sqlDB, Name: name}
}

func withDatabase(dsn, name string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", err
	}
	u.Path = "/" + name
	return u.String(), nil
}

func open(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	level := logger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = logger.Info
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	require.NoError(t, err, "connect %s", dsn)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return db, sqlDB
}
