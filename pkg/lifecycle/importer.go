package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StageStatus is the outcome of one stage of an import.
type StageStatus string

const (
	StageCompleted StageStatus = "completed"
	StageFailed    StageStatus = "failed"
	StageSkipped   StageStatus = "skipped"
	StageCancelled StageStatus = "cancelled"
)

// StageReport describes what happened to one stage.
type StageReport struct {
	Stage     string      `json:"stage"`
	Status    StageStatus `json:"status"`
	Total     int         `json:"total"`
	Processed int         `json:"processed"`
	Success   int         `json:"success"`
	Errors    int         `json:"errors"`
	Workers   int         `json:"workers,omitempty"`
	Duration  string      `json:"duration,omitempty"`
	Reason    string      `json:"reason,omitempty"`
}

// Report is the outcome of an import command.
type Report struct {
	RunID    uuid.UUID
	Stages   []StageReport
	Duration time.Duration
}

// Failed returns the report of the failed or cancelled stage, if any.
func (r Report) Failed() (StageReport, bool) {
	for _, s := range r.Stages {
		if s.Status == StageFailed || s.Status == StageCancelled {
			return s, true
		}
	}
	return StageReport{}, false
}

// Totals sums counters of all stages.
func (r Report) Totals() (processed, success, errors int) {
	for _, s := range r.Stages {
		processed += s.Processed
		success += s.Success
		errors += s.Errors
	}
	return processed, success, errors
}

// Importer runs the named import stages in the given order. It stops
// at the first stage that fails.
type Importer interface {
	Import(ctx context.Context, stages []string) (Report, error)
}
