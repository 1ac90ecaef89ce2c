// Package ioschema creates and migrates the pokedb tables with GORM
// AutoMigrate.
package ioschema

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/gnames/pokedb/pkg/db"
	"github.com/gnames/pokedb/pkg/lifecycle"
	"github.com/gnames/pokedb/pkg/schema"
	"github.com/jackc/pgx/v5"
)

type manager struct {
	operator db.Operator
}

// NewManager creates a SchemaManager over a connected operator.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create builds all tables. A database that already has tables is
// refused unless force is set, then its tables are dropped first.
func (m *manager) Create(ctx context.Context, force bool) error {
	if m.operator.Pool() == nil {
		return NotConnectedError()
	}

	hasTables, err := m.operator.HasTables(ctx)
	if err != nil {
		return err
	}
	if hasTables {
		if !force {
			return SchemaExistsError()
		}
		slog.Warn("Dropping existing tables")
		if err = m.operator.DropAllTables(ctx); err != nil {
			return err
		}
	}

	if err = m.automigrate(ctx); err != nil {
		return CreateSchemaError(err)
	}
	if err = m.setCollation(ctx); err != nil {
		return err
	}

	slog.Info("Schema created", "tables", len(schema.AllModels()))
	return nil
}

// Migrate adds missing tables, columns and indexes. Existing rows are
// kept.
func (m *manager) Migrate(ctx context.Context) error {
	if m.operator.Pool() == nil {
		return NotConnectedError()
	}

	if err := m.automigrate(ctx); err != nil {
		return MigrateSchemaError(err)
	}
	if err := m.setCollation(ctx); err != nil {
		return err
	}

	slog.Info("Schema migrated", "tables", len(schema.AllModels()))
	return nil
}

func (m *manager) automigrate(ctx context.Context) error {
	gormDB, err := m.operator.GORM()
	if err != nil {
		return err
	}
	return schema.Migrate(gormDB.WithContext(ctx))
}

// setCollation gives name columns "C" collation, so names sort by bytes
// whatever the locale of the server is. All columns change in one
// transaction.
func (m *manager) setCollation(ctx context.Context) error {
	tx, err := m.operator.Pool().Begin(ctx)
	if err != nil {
		return CollationError("", "", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, col := range collationColumns() {
		q := collationSQL(col)
		if _, err = tx.Exec(ctx, q); err != nil {
			return CollationError(col.table, col.column, err)
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return CollationError("", "", err)
	}
	return nil
}

// collationSQL renders the ALTER statement of one column.
func collationSQL(col columnDef) string {
	return "ALTER TABLE " + pgx.Identifier{col.table}.Sanitize() +
		" ALTER COLUMN " + pgx.Identifier{col.column}.Sanitize() +
		" TYPE VARCHAR(" + strconv.Itoa(col.varchar) + `) COLLATE "C"`
}
