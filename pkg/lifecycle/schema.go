// Package lifecycle declares the contracts of pokedb commands that
// change the state of the database: schema management and imports.
package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and
// migrations. Schema management is idempotent.
type SchemaManager interface {
	// Create creates the schema. Existing tables are dropped first when
	// force is true.
	Create(ctx context.Context, force bool) error

	// Migrate updates the database schema to the latest models.
	Migrate(ctx context.Context) error
}
