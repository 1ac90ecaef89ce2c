// Package iotesting provides shared test utilities: configs pointing to
// temporary directories, a PostgreSQL test container, an in-memory
// store and a mock of the upstream API.
package iotesting

import (
	"context"
	"testing"
	"time"

	"github.com/gnames/pokedb/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	TestDatabaseName = "pokedb_test"
)

// TestConfig returns a default configuration with HomeDir set to a
// temporary directory, no inter-item delay and the response cache off.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptImportDelay(0),
		config.OptImportUseCache(false),
		config.OptImportQuiet(true),
	})
	return cfg
}

// StartPostgres runs a disposable PostgreSQL container and returns the
// database settings to reach it. The container is removed when the test
// ends. Callers skip in short mode.
func StartPostgres(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase(TestDatabaseName),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}

	return &config.DatabaseConfig{
		Host:     pc.ConnConfig.Host,
		Port:     int(pc.ConnConfig.Port),
		User:     pc.ConnConfig.User,
		Password: pc.ConnConfig.Password,
		Database: pc.ConnConfig.Database,
		SSLMode:  "disable",
	}
}
