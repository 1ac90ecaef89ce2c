package ioparallel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/gnames/gnuuid"
	"github.com/gnames/pokedb/internal/ioimport"
	"github.com/gnames/pokedb/pkg/config"
	"github.com/gnames/pokedb/pkg/parallel"
	"github.com/google/uuid"
)

// WorkerRunID derives the run id of a worker from the run id of its
// coordinator. The same worker of the same run always gets the same id.
func WorkerRunID(parent uuid.UUID, stage string, workerID int) uuid.UUID {
	return gnuuid.New(parent.String() + "|" + stage + "|" + strconv.Itoa(workerID))
}

// ExecLauncher starts every worker as a new process of the current
// executable: "pokedb import <stage>" with the worker flags.
type ExecLauncher struct {
	exe      string
	cfg      config.ImportConfig
	runID    uuid.UUID
	timeouts map[string]time.Duration
}

type execHandle struct {
	part   parallel.Partition
	stage  string
	cmd    *exec.Cmd
	cancel context.CancelFunc
}

func (h *execHandle) Partition() parallel.Partition {
	return h.part
}

// NewExecLauncher creates a launcher for the coordinator run runID.
// Worker timeouts are cfg.WorkerTimeout seconds multiplied by the
// timeout factor of the stage.
func NewExecLauncher(
	cfg config.ImportConfig,
	runID uuid.UUID,
) (*ExecLauncher, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, ExecutableError(err)
	}

	timeouts := make(map[string]time.Duration)
	for _, st := range ioimport.Stages() {
		timeouts[st.Name()] = time.Duration(cfg.WorkerTimeout*st.TimeoutFactor) * time.Second
	}

	return &ExecLauncher{
		exe:      exe,
		cfg:      cfg,
		runID:    runID,
		timeouts: timeouts,
	}, nil
}

// Args returns the command line of a worker.
func (l *ExecLauncher) Args(stage string, p parallel.Partition) []string {
	res := []string{
		"import", stage,
		"--threads=1",
		"--worker-id=" + strconv.Itoa(p.WorkerID),
		"--offset=" + strconv.Itoa(p.Offset),
		"--max-items=" + strconv.Itoa(p.MaxItems),
		"--run-id=" + l.runID.String(),
		"--delay=" + strconv.Itoa(l.cfg.Delay),
	}
	if l.cfg.Limit > 0 {
		res = append(res, "--limit="+strconv.Itoa(l.cfg.Limit))
	}
	if !l.cfg.UseCache {
		res = append(res, "--no-cache")
	}
	return res
}

// Launch starts the worker process. It is killed when ctx is cancelled
// or its timeout runs out.
func (l *ExecLauncher) Launch(
	ctx context.Context,
	stage string,
	p parallel.Partition,
) (parallel.Handle, error) {
	cancel := context.CancelFunc(func() {})
	if d := l.timeouts[stage]; d > 0 {
		ctx, cancel = context.WithTimeout(ctx, d)
	}

	cmd := exec.CommandContext(ctx, l.exe, l.Args(stage, p)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, LaunchError(stage, p.WorkerID, err)
	}
	slog.Info("Worker started",
		"stage", stage,
		"worker_id", p.WorkerID,
		"pid", cmd.Process.Pid,
		"offset", p.Offset,
		"max_items", p.MaxItems,
	)

	return &execHandle{part: p, stage: stage, cmd: cmd, cancel: cancel}, nil
}

// Join waits for the worker process to exit.
func (l *ExecLauncher) Join(h parallel.Handle) parallel.ExitStatus {
	eh, ok := h.(*execHandle)
	if !ok {
		return parallel.ExitStatus{
			Partition: h.Partition(),
			Code:      -1,
			Err:       fmt.Errorf("unknown handle %T", h),
		}
	}
	defer eh.cancel()

	err := eh.cmd.Wait()
	res := parallel.ExitStatus{Partition: eh.part, Code: -1}
	if eh.cmd.ProcessState != nil {
		res.Code = eh.cmd.ProcessState.ExitCode()
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			res.Code = -1
		}
		res.Err = err
	}
	return res
}
