package lifecycle_test

import (
	"testing"

	"github.com/gnames/pokedb/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

func TestReport(t *testing.T) {
	rep := lifecycle.Report{Stages: []lifecycle.StageReport{
		{Stage: "types", Status: lifecycle.StageCompleted, Processed: 3, Success: 3},
		{Stage: "abilities", Status: lifecycle.StageSkipped},
		{Stage: "moves", Status: lifecycle.StageFailed, Processed: 5, Success: 4, Errors: 1},
	}}

	failed, ok := rep.Failed()
	assert.True(t, ok)
	assert.Equal(t, "moves", failed.Stage)

	processed, success, errs := rep.Totals()
	assert.Equal(t, 8, processed)
	assert.Equal(t, 7, success)
	assert.Equal(t, 1, errs)

	_, ok = lifecycle.Report{}.Failed()
	assert.False(t, ok)
}
