package iodb_test

import (
	"context"
	"testing"

	"github.com/gnames/pokedb/internal/iodb"
	"github.com/gnames/pokedb/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These are integration tests that start a PostgreSQL container.
// Skip them with `go test -short`.

func TestPgxOperator(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	dbCfg := iotesting.StartPostgres(t)

	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, dbCfg))
	defer op.Close()

	t.Run("table exists", func(t *testing.T) {
		exists, err := op.TableExists(ctx, "test_table_exists")
		require.NoError(t, err)
		assert.False(t, exists, "Table should not exist initially")

		_, err = op.Pool().Exec(ctx,
			"CREATE TABLE test_table_exists (id SERIAL PRIMARY KEY)")
		require.NoError(t, err)

		exists, err = op.TableExists(ctx, "test_table_exists")
		require.NoError(t, err)
		assert.True(t, exists, "Table should exist after creation")

		has, err := op.HasTables(ctx)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("gorm shares the pool", func(t *testing.T) {
		db, err := op.GORM()
		require.NoError(t, err)
		var one int
		require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
		assert.Equal(t, 1, one)

		db2, err := op.GORM()
		require.NoError(t, err)
		assert.Same(t, db, db2)
	})

	t.Run("drop all tables", func(t *testing.T) {
		_, _ = op.Pool().Exec(ctx,
			"CREATE TABLE IF NOT EXISTS drop_test1 (id SERIAL PRIMARY KEY)")
		_, _ = op.Pool().Exec(ctx,
			"CREATE TABLE IF NOT EXISTS drop_test2 (id SERIAL PRIMARY KEY)")

		require.NoError(t, op.DropAllTables(ctx))

		has, err := op.HasTables(ctx)
		require.NoError(t, err)
		assert.False(t, has, "all tables should be dropped")
	})
}

func TestPgxOperatorInvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	cfg := iotesting.TestConfig(t).Database
	cfg.Host = "invalid-host-that-does-not-exist"

	err := op.Connect(context.Background(), &cfg)
	assert.Error(t, err, "Connect should fail with invalid host")
}

func TestNotConnected(t *testing.T) {
	op := iodb.NewPgxOperator()
	ctx := context.Background()

	_, err := op.TableExists(ctx, "types")
	assert.Error(t, err)
	_, err = op.HasTables(ctx)
	assert.Error(t, err)
	assert.Error(t, op.DropAllTables(ctx))
}
