package ioschema

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/pkg/errcode"
)

func NotConnectedError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Schema operation attempted without database connection",
		Err:  fmt.Errorf("from %s: %w", fn.Name(), errors.New("not connected")),
	}
}

// SchemaExistsError is returned by create when the database already
// has tables and force is not set.
func SchemaExistsError() error {
	msg := `Database already has tables.
   Run <em>'pokedb migrate'</em> to update them, or
   <em>'pokedb create --force'</em> to drop them and start over.`
	return &gn.Error{
		Code: errcode.SchemaExistsError,
		Msg:  msg,
		Err:  errors.New("database is not empty"),
	}
}

func CreateSchemaError(err error) error {
	msg := "Cannot create pokedb tables, check that the user may CREATE"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: automigrate: %w", fn.Name(), err),
	}
}

func MigrateSchemaError(err error) error {
	msg := "Cannot migrate pokedb tables"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: automigrate: %w", fn.Name(), err),
	}
}

// CollationError is returned when name columns cannot get "C"
// collation. Table and column are empty when the transaction itself
// failed.
func CollationError(table, column string, err error) error {
	msg := "Cannot set collation of name columns"
	var vars []any
	if table != "" {
		msg = "Cannot set collation on <em>%s.%s</em>"
		vars = []any{table, column}
	}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaCollationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: collation %s.%s: %w",
			fn.Name(), table, column, err),
	}
}
