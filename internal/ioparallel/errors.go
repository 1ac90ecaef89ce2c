package ioparallel

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/pkg/errcode"
)

func ExecutableError(err error) error {
	msg := "Cannot find the pokedb executable to start workers"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParallelExecutableError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: executable: %w", fn.Name(), err),
	}
}

func LaunchError(stage string, workerID int, err error) error {
	msg := "Cannot start worker %d of <em>%s</em>"
	vars := []any{workerID, stage}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParallelLaunchError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: launch %s worker %d: %w",
			fn.Name(), stage, workerID, err),
	}
}

// WorkersFailedError reports the workers of a stage that did not
// finish successfully.
func WorkersFailedError(stage string, failed []int) error {
	msg := "Workers %v of <em>%s</em> failed"
	vars := []any{failed, stage}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParallelWorkersFailedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %d workers of %s failed: %v",
			fn.Name(), len(failed), stage, failed),
	}
}

func CancelledError(err error) error {
	msg := "Parallel import was cancelled"
	return &gn.Error{
		Code: errcode.ImportCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("parallel import cancelled: %w", err),
	}
}
