package ioprogress

import (
	"context"
	"sync"
	"time"

	"github.com/gnames/pokedb/pkg/progress"
)

// writeTimeout bounds a single publish. Publishing uses its own context
// so that the final state of a cancelled run is still written.
const writeTimeout = 5 * time.Second

type tracker struct {
	mu       sync.Mutex
	board    *Board
	workerID int
	state    progress.State
}

// NewTracker returns a progress.Tracker that keeps its state locally and
// publishes it after every change. workerID -1 publishes to the main
// key, worker ids publish to their own keys.
func NewTracker(board *Board, workerID int, initial progress.State) progress.Tracker {
	return &tracker{
		board:    board,
		workerID: workerID,
		state:    initial,
	}
}

func (t *tracker) Start(stage string, total int) error {
	return t.update(func(s *progress.State) { s.Start(stage, total) })
}

func (t *tracker) Advance(msg string) error {
	return t.update(func(s *progress.State) { s.Advance(msg) })
}

func (t *tracker) Success() error {
	return t.update(func(s *progress.State) { s.Success() })
}

func (t *tracker) Error(msg string) error {
	return t.update(func(s *progress.State) { s.Error(msg) })
}

func (t *tracker) Complete(stage string) error {
	return t.update(func(s *progress.State) { s.Complete(stage) })
}

func (t *tracker) Fail(stage string, cancelled bool, reason string) error {
	return t.update(func(s *progress.State) { s.Fail(stage, cancelled, reason) })
}

func (t *tracker) Reset() error {
	return t.update(func(s *progress.State) { *s = progress.Initial() })
}

func (t *tracker) Set(s progress.State) error {
	return t.update(func(st *progress.State) { *st = s })
}

func (t *tracker) State() progress.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *tracker) update(fn func(*progress.State)) error {
	t.mu.Lock()
	fn(&t.state)
	s := t.state
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return t.board.Save(ctx, t.workerID, s)
}
