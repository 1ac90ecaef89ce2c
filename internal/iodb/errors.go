package iodb

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/pkg/config"
	"github.com/gnames/pokedb/pkg/errcode"
)

func ConnectionError(cfg *config.DatabaseConfig, err error) error {
	msg := `Cannot connect to <em>%s@%s:%d/%s</em>

Check that PostgreSQL is running and the database exists:
  <em>pg_isready -h %s -p %d</em>
Settings come from ~/.config/pokedb/config.yaml and POKEDB_DATABASE_*
variables.`
	vars := []any{
		cfg.User, cfg.Host, cfg.Port, cfg.Database, cfg.Host, cfg.Port,
	}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: connect %s:%d/%s: %w",
			fn.Name(), cfg.Host, cfg.Port, cfg.Database, err),
	}
}

// EmptyDatabaseError is returned when a command needs the schema but
// the database has no tables.
func EmptyDatabaseError(cfg *config.DatabaseConfig) error {
	msg := `Database <em>%s</em> on <em>%s</em> has no tables.
   Run <em>'pokedb create'</em> first to initialize the schema.`
	vars := []any{cfg.Database, cfg.Host}
	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("database %s on %s is empty", cfg.Database, cfg.Host),
	}
}

func NotConnectedError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database operation attempted without connection",
		Err:  fmt.Errorf("from %s: %w", fn.Name(), errors.New("not connected")),
	}
}

func QueryTablesError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  "Cannot list database tables",
		Err:  fmt.Errorf("from %s: list tables: %w", fn.Name(), err),
	}
}

func DropTablesError(tables []string, err error) error {
	msg := "Cannot drop %d tables"
	vars := []any{len(tables)}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBDropTablesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: drop %v: %w", fn.Name(), tables, err),
	}
}

func GORMConnectionError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  "Cannot open GORM session over the connection pool",
		Err:  fmt.Errorf("from %s: gorm: %w", fn.Name(), err),
	}
}
