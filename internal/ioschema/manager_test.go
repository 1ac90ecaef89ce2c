package ioschema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/internal/iodb"
	"github.com/gnames/pokedb/internal/ioschema"
	"github.com/gnames/pokedb/internal/iotesting"
	"github.com/gnames/pokedb/pkg/errcode"
	"github.com/gnames/pokedb/pkg/lifecycle"
	"github.com/gnames/pokedb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerNotConnected(t *testing.T) {
	var mgr lifecycle.SchemaManager = ioschema.NewManager(iodb.NewPgxOperator())
	ctx := context.Background()

	for _, err := range []error{mgr.Create(ctx, false), mgr.Migrate(ctx)} {
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr))
		assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	}
}

func TestManagerIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, iotesting.StartPostgres(t)))
	t.Cleanup(func() { op.Close() })

	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Create(ctx, false))

	for _, m := range schema.AllModels() {
		tm := m.(interface{ TableName() string })
		ok, err := op.TableExists(ctx, tm.TableName())
		require.NoError(t, err)
		assert.True(t, ok, tm.TableName())
	}

	err := mgr.Create(ctx, false)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.SchemaExistsError, gnErr.Code)

	require.NoError(t, mgr.Create(ctx, true))
	require.NoError(t, mgr.Migrate(ctx))
}
