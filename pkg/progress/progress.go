// Package progress describes the externally visible state of an import.
// State transitions are pure; persisting the state is the job of a
// Tracker implementation in internal/ioprogress.
package progress

import "fmt"

const (
	// StepStart is the step of a fresh or reset state.
	StepStart = "start"

	// StepComplete ends a successful run.
	StepComplete = "complete"

	// StepFailed and StepCancelled end a run that stopped at a stage.
	StepFailed    = "failed"
	StepCancelled = "cancelled"

	// StageAll names the whole sequence of stages.
	StageAll = "all"
)

// Step describes the stage being imported.
type Step struct {
	CurrentStep string `json:"current_step"`
	Total       int    `json:"total"`
	Current     int    `json:"current"`
	Message     string `json:"message"`
}

// State is the document shared between importing processes and
// pollers.
type State struct {
	Progress     Step `json:"progress"`
	SuccessCount int  `json:"successCount"`
	ErrorCount   int  `json:"errorCount"`
}

// Initial returns the "ready" state.
func Initial() State {
	return State{
		Progress: Step{
			CurrentStep: StepStart,
			Message:     "Ready to import",
		},
	}
}

// Start begins a stage with a known total. Success and error counters
// are kept, they accumulate over the stages of one run.
func (s *State) Start(stage string, total int) {
	s.Progress = Step{
		CurrentStep: stage,
		Total:       total,
		Message:     fmt.Sprintf("Starting %s...", stage),
	}
}

// Advance moves the current item forward by one.
func (s *State) Advance(msg string) {
	s.Progress.Current++
	if msg != "" {
		s.Progress.Message = msg
	}
}

// Success counts one successfully imported item.
func (s *State) Success() {
	s.SuccessCount++
}

// Error counts one failed item.
func (s *State) Error(msg string) {
	s.ErrorCount++
	if msg != "" {
		s.Progress.Message = msg
	}
}

// Complete marks a stage, or the whole run when stage is StageAll,
// as finished.
func (s *State) Complete(stage string) {
	if stage == StageAll {
		s.Progress.CurrentStep = StepComplete
		s.Progress.Message = "Import complete!"
		return
	}
	s.Progress.CurrentStep = stage
	s.Progress.Message = fmt.Sprintf("Completed %s", stage)
}

// Fail marks the run as stopped at stage. Item counters are kept.
func (s *State) Fail(stage string, cancelled bool, reason string) {
	s.Progress.CurrentStep = StepFailed
	verb := "failed"
	if cancelled {
		s.Progress.CurrentStep = StepCancelled
		verb = "was cancelled"
	}
	s.Progress.Message = fmt.Sprintf("Stage %s %s: %s", stage, verb, reason)
}

// IsComplete is true when every stage of the run finished.
func (s State) IsComplete() bool {
	return s.Progress.CurrentStep == StepComplete
}

// IsFinished is true when the run is complete, failed or cancelled.
func (s State) IsFinished() bool {
	switch s.Progress.CurrentStep {
	case StepComplete, StepFailed, StepCancelled:
		return true
	}
	return false
}

// Tracker keeps a State and publishes it after every change.
type Tracker interface {
	Start(stage string, total int) error
	Advance(msg string) error
	Success() error
	Error(msg string) error
	Complete(stage string) error
	Fail(stage string, cancelled bool, reason string) error
	Reset() error

	// Set replaces the whole state, for example with worker counters
	// folded in.
	Set(s State) error
	State() State
}
