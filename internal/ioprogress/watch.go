package ioprogress

import (
	"context"
	"log/slog"
	"time"
)

// WatchStop returns a context that is cancelled when the stop flag
// appears on the board or when the parent is done. The flag is polled
// every interval.
func WatchStop(
	parent context.Context,
	board *Board,
	interval time.Duration,
) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stop, err := board.StopRequested(ctx)
				if err != nil {
					slog.Warn("Cannot check stop flag", "error", err)
					continue
				}
				if stop {
					slog.Info("Stop requested, cancelling import")
					cancel()
					return
				}
			}
		}
	}()

	return ctx, cancel
}
