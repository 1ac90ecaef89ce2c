package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/pkg/errcode"
)

func UpsertError(table string, key int, err error) error {
	msg := "Cannot save <em>%s</em> record %d"
	vars := []any{table, key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreUpsertError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: upsert into %s (%d): %w",
			fn.Name(), table, key, err),
	}
}

func LookupError(table, name string, err error) error {
	msg := "Cannot query <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreLookupError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: query %s %q: %w",
			fn.Name(), table, name, err),
	}
}

func SyncError(table string, pokemonID int64, err error) error {
	msg := "Cannot update <em>%s</em> of Pokemon %d"
	vars := []any{table, pokemonID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreSyncError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: sync %s for pokemon %d: %w",
			fn.Name(), table, pokemonID, err),
	}
}

func ClearError(entity string, err error) error {
	msg := "Cannot clear <em>%s</em>"
	vars := []any{entity}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreClearError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: clear %s: %w", fn.Name(), entity, err),
	}
}

func UnknownEntityError(entity string) error {
	msg := "Operation is not supported for <em>%s</em>"
	vars := []any{entity}
	return &gn.Error{
		Code: errcode.StoreUnknownEntityError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unsupported entity %s", entity),
	}
}
