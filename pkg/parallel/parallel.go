// Package parallel describes how a stage is split between workers and
// how workers are started and joined. Implementations live in
// internal/ioparallel.
package parallel

import (
	"context"
	"fmt"
)

// Partition is the contiguous slice of a stage given to one worker.
type Partition struct {
	WorkerID int
	Offset   int
	MaxItems int
}

// Split divides total items between at most threads workers. Every
// worker gets ceil(total/threads) items except the last one, which gets
// the rest. Workers that would get nothing are not created.
func Split(total, threads int) []Partition {
	if total <= 0 {
		return nil
	}
	if threads < 1 {
		threads = 1
	}
	chunk := (total + threads - 1) / threads

	res := make([]Partition, 0, threads)
	for i := range threads {
		offset := i * chunk
		if offset >= total {
			break
		}
		res = append(res, Partition{
			WorkerID: i,
			Offset:   offset,
			MaxItems: min(chunk, total-offset),
		})
	}
	return res
}

// Handle is a running worker.
type Handle interface {
	Partition() Partition
}

// ExitStatus is the outcome of one worker.
type ExitStatus struct {
	Partition

	// Code is the exit code of the worker, -1 if it could not start or
	// was killed.
	Code int

	// Err is set when the worker failed.
	Err error
}

// OK is true when the worker finished successfully.
func (s ExitStatus) OK() bool {
	return s.Code == 0 && s.Err == nil
}

func (s ExitStatus) String() string {
	if s.OK() {
		return fmt.Sprintf("worker %d: ok", s.WorkerID)
	}
	return fmt.Sprintf("worker %d: exit %d: %v", s.WorkerID, s.Code, s.Err)
}

// Launcher starts workers of a stage and waits for them. Launch must
// not block until the worker ends, Join must.
type Launcher interface {
	Launch(ctx context.Context, stage string, p Partition) (Handle, error)
	Join(h Handle) ExitStatus
}
