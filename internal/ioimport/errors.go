package ioimport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/pkg/errcode"
)

func CountError(endpoint string, err error) error {
	msg := "Cannot get the number of <em>%s</em> resources"
	vars := []any{endpoint}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportCountError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: count %s: %w", fn.Name(), endpoint, err),
	}
}

func PageError(endpoint string, offset int, err error) error {
	msg := "Cannot get <em>%s</em> page at offset %d"
	vars := []any{endpoint, offset}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportPageError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: page %s offset %d: %w",
			fn.Name(), endpoint, offset, err),
	}
}

// StageError is a failure that stopped a whole stage.
func StageError(stage string, err error) error {
	msg := "Import of <em>%s</em> failed"
	vars := []any{stage}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportStageError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: stage %s: %w", fn.Name(), stage, err),
	}
}

func UnknownStageError(name string) error {
	msg := "Unknown import stage <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportUnknownStageError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown stage %q", fn.Name(), name),
	}
}

func CancelledError(err error) error {
	msg := "Import was cancelled"
	return &gn.Error{
		Code: errcode.ImportCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("import cancelled: %w", err),
	}
}
