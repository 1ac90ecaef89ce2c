package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/pkg/config"
	"github.com/gnames/pokedb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("boom")
	cfg := &config.DatabaseConfig{
		Host: "db", Port: 5433, User: "poke", Database: "pokedb",
	}

	tests := []struct {
		msg   string
		err   error
		code  gn.ErrorCode
		vars  int
		cause bool
	}{
		{"connection", ConnectionError(cfg, cause), errcode.DBConnectionError, 6, true},
		{"empty", EmptyDatabaseError(cfg), errcode.DBEmptyDatabaseError, 2, false},
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError, 0, false},
		{"query", QueryTablesError(cause), errcode.DBQueryTablesError, 0, true},
		{"drop", DropTablesError([]string{"types", "moves"}, cause), errcode.DBDropTablesError, 1, true},
		{"gorm", GORMConnectionError(cause), errcode.SchemaGORMConnectionError, 0, true},
	}

	for _, v := range tests {
		var gnErr *gn.Error
		require.True(t, errors.As(v.err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.NotEmpty(t, gnErr.Msg, v.msg)
		assert.Len(t, gnErr.Vars, v.vars, v.msg)
		if v.cause {
			assert.ErrorIs(t, gnErr.Err, cause, v.msg)
		}
	}
}

func TestErrorsMentionCaller(t *testing.T) {
	var gnErr *gn.Error
	err := QueryTablesError(errors.New("boom"))
	require.True(t, errors.As(err, &gnErr))
	assert.Contains(t, gnErr.Err.Error(), "iodb.TestErrorsMentionCaller")
}

func TestConnString(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: `p@ss 'word\`,
		Database: "pokedb",
		SSLMode:  "disable",
	}
	res := connString(cfg, "pokedb-worker-1")
	assert.Equal(t,
		`host='localhost' port=5432 user='postgres' dbname='pokedb' `+
			`sslmode='disable' application_name='pokedb-worker-1' `+
			`password='p@ss \'word\\'`,
		res)

	cfg.Password = ""
	assert.NotContains(t, connString(cfg, "pokedb"), "password")
}
