package ioprogress

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/pkg/errcode"
)

func ConnectionError(addr string, err error) error {
	msg := "Cannot connect to progress store at <em>%s</em>"
	vars := []any{addr}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ProgressConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to redis %s: %w",
			fn.Name(), addr, err),
	}
}

func ReadError(key string, err error) error {
	msg := "Cannot read progress <em>%s</em>"
	vars := []any{key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ProgressReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), key, err),
	}
}

func WriteError(key string, err error) error {
	msg := "Cannot write progress <em>%s</em>"
	vars := []any{key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ProgressWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), key, err),
	}
}
