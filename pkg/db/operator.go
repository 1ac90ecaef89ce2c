package db

import (
	"context"

	"github.com/gnames/pokedb/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes the pgxpool.Pool
// and a GORM handle over the same pool to higher level components
// (schema manager, store, bulk clear).
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// GORM returns a GORM handle that shares the connection pool.
	GORM() (*gorm.DB, error)

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public schema.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	// Used during schema creation when overwriting existing data.
	DropAllTables(ctx context.Context) error
}
