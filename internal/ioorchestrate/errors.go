package ioorchestrate

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/pkg/errcode"
)

// StageFailedError reports the stage that stopped an import. Stages
// after it were not run.
func StageFailedError(stage string, err error) error {
	msg := `Import stopped at <em>%s</em>

Stages after it were not run. Fix the cause and run
"pokedb import %s" to continue from this stage.`
	vars := []any{stage, stage}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OrchestrateStageFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: stage %s: %w", fn.Name(), stage, err),
	}
}
